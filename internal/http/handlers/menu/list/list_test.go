package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/services/menu"
)

type MenuServiceMock struct {
	mock.Mock
}

func (m *MenuServiceMock) ResolveDate(menuDate string) (string, error) {
	args := m.Called(menuDate)
	return args.String(0), args.Error(1)
}

func (m *MenuServiceMock) List(ctx context.Context, menuDate string) ([]*models.MenuItem, error) {
	args := m.Called(ctx, menuDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler_GroupsByMealType(t *testing.T) {
	svc := new(MenuServiceMock)
	svc.On("ResolveDate", "").Return("2024-03-16", nil).Once()
	svc.On("List", mock.Anything, "2024-03-16").Return([]*models.MenuItem{
		{ID: "m-1", Name: "Porridge", MealType: models.MealBreakfast},
		{ID: "m-2", Name: "Tea", MealType: models.MealSnacks},
		{ID: "m-3", Name: "Pancakes", MealType: models.MealBreakfast},
	}, nil).Once()

	rec := httptest.NewRecorder()
	New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Data Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2024-03-16", got.Data.Date)
	require.Len(t, got.Data.Sections, 3)
	assert.Equal(t, "Breakfast", got.Data.Sections[0].Label)
	assert.Len(t, got.Data.Sections[0].Items, 2)
	assert.Equal(t, "Lunch", got.Data.Sections[1].Label)
	assert.Empty(t, got.Data.Sections[1].Items)
	assert.Equal(t, "Evening Snacks", got.Data.Sections[2].Label)
	svc.AssertExpectations(t)
}

func TestListHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMock  func(m *MenuServiceMock)
		wantStatus int
	}{
		{
			name:  "bad date",
			query: "?date=16.03.2024",
			setupMock: func(m *MenuServiceMock) {
				m.On("ResolveDate", "16.03.2024").Return("", fmt.Errorf("wrap: %w", menu.ErrInvalidDate)).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "storage error",
			query: "?date=2024-03-20",
			setupMock: func(m *MenuServiceMock) {
				m.On("ResolveDate", "2024-03-20").Return("2024-03-20", nil).Once()
				m.On("List", mock.Anything, "2024-03-20").Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MenuServiceMock)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
