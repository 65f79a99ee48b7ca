package summary

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

	"github.com/magabrotheeeer/canteen/internal/models"
)

type SelectionServiceMock struct {
	mock.Mock
}

func (m *SelectionServiceMock) Summary(ctx context.Context, selectionDate string) (*models.SelectionSummary, error) {
	args := m.Called(ctx, selectionDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SelectionSummary), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSummaryHandler(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(m *SelectionServiceMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "defaults to tomorrow",
			setupMock: func(m *SelectionServiceMock) {
				m.On("Summary", mock.Anything, "").Return(&models.SelectionSummary{
					Date:  "2024-03-16",
					Total: 1,
					Selections: []*models.SelectionWithProfile{
						{MealSelection: models.MealSelection{ID: "s-1"}, FullName: "Anna", MenuItemName: "Soup", MealType: models.MealLunch},
					},
					Items: []*models.ItemCount{{MenuItemID: "m-1", Name: "Soup", MealType: models.MealLunch, Count: 1}},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"full_name":"Anna"`,
		},
		{
			name:  "explicit date with no data",
			query: "?date=2024-03-10",
			setupMock: func(m *SelectionServiceMock) {
				m.On("Summary", mock.Anything, "2024-03-10").Return(&models.SelectionSummary{Date: "2024-03-10"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"date":"2024-03-10","total":0,"selections":[],"items":[]`,
		},
		{
			name:           "bad date",
			query:          "?date=10-03-2024",
			setupMock:      func(*SelectionServiceMock) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid date`,
		},
		{
			name:  "storage error",
			query: "?date=2024-03-10",
			setupMock: func(m *SelectionServiceMock) {
				m.On("Summary", mock.Anything, "2024-03-10").Return(nil, errors.New("db")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to load summary`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(SelectionServiceMock)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/selections/summary"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
