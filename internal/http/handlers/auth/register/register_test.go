package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/canteen/internal/lib/password"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, email, fullName, password string) (*models.Profile, error) {
	args := m.Called(ctx, email, fullName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := Request{Email: "anna@canteen.test", FullName: "Anna", Password: "password123"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid registration",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, "anna@canteen.test", "Anna", "password123").
					Return(&models.Profile{ID: "p-1", Email: "anna@canteen.test", FullName: "Anna", Role: models.RoleEmployee, PasswordHash: "secret"}, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(*AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "anna@canteen.test", FullName: "Anna"},
			setupMock:      func(*AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:        "email taken",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, repository.ErrEmailTaken).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantError:      "email already registered",
			wantStatus:     "Error",
		},
		{
			name:        "cyrillic password over 72 bytes",
			requestBody: Request{Email: "anna@canteen.test", FullName: "Anna", Password: strings.Repeat("ж", 40)},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, strings.Repeat("ж", 40)).
					Return(nil, fmt.Errorf("auth.Register: %w", password.ErrTooLong)).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password must be at most 72 bytes",
			wantStatus:     "Error",
		},
		{
			name:        "service error",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)
			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			if s, ok := tt.requestBody.(string); ok {
				bodyBytes = []byte(s)
			} else {
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "p-1", data["id"])
				assert.Equal(t, "employee", data["role"])
				assert.NotContains(t, data, "password_hash")
			}
			authMock.AssertExpectations(t)
		})
	}
}
