package me

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
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Profile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		setupMock  func(m *AuthServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "returns profile",
			userID: "p-1",
			setupMock: func(m *AuthServiceMock) {
				m.On("Profile", mock.Anything, "p-1").Return(&models.Profile{ID: "p-1", FullName: "Anna"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"full_name":"Anna"`,
		},
		{
			name:       "no user in context",
			setupMock:  func(*AuthServiceMock) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"error":"unauthorized"`,
		},
		{
			name:   "profile deleted",
			userID: "p-2",
			setupMock: func(m *AuthServiceMock) {
				m.On("Profile", mock.Anything, "p-2").Return(nil, repository.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"error":"profile not found"`,
		},
		{
			name:   "storage error",
			userID: "p-3",
			setupMock: func(m *AuthServiceMock) {
				m.On("Profile", mock.Anything, "p-3").Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"error":"failed to load profile"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
