package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		mockErr    error
		callMock   bool
		wantStatus int
	}{
		{name: "revokes token", token: "jwt", callMock: true, wantStatus: http.StatusOK},
		{name: "no token in context", wantStatus: http.StatusUnauthorized},
		{name: "store failure", token: "jwt", callMock: true, mockErr: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.callMock {
				authMock.On("Logout", mock.Anything, tt.token).Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
			if tt.token != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Token, tt.token))
			}
			rec := httptest.NewRecorder()

			New(newNoopLogger(), authMock).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			authMock.AssertExpectations(t)
		})
	}
}
