// Package summary реализует HTTP-обработчик сводки отметок для администратора.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/dates"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
)

// Service собирает сводку.
type Service interface {
	Summary(ctx context.Context, selectionDate string) (*models.SelectionSummary, error)
}

// Handler обрабатывает GET /selections/summary.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка отметок
// @Description Подтвержденные отметки сотрудников и количество по блюдам на дату (по умолчанию завтра).
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Дата YYYY-MM-DD"
// @Success 200 {object} response.Response{data=models.SelectionSummary}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /selections/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.selection.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := dates.ParseYMD(date); err != nil {
			log.Warn("invalid date", sl.Err(err))
			response.WriteError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	summary, err := h.service.Summary(r.Context(), date)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to load summary")
		return
	}
	if summary.Selections == nil {
		summary.Selections = []*models.SelectionWithProfile{}
	}
	if summary.Items == nil {
		summary.Items = []*models.ItemCount{}
	}

	render.JSON(w, r, response.StatusOKWithData(summary))
}
