// Package list реализует HTTP-обработчик меню на дату, сгруппированного по приемам пищи.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/services/menu"
)

// Service отдает меню.
type Service interface {
	ResolveDate(menuDate string) (string, error)
	List(ctx context.Context, menuDate string) ([]*models.MenuItem, error)
}

// Response меню на дату.
type Response struct {
	Date     string               `json:"date"`
	Sections []models.MenuSection `json:"sections"`
}

// Handler обрабатывает GET /menu.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Меню
// @Description Меню на дату (по умолчанию завтра), сгруппированное по приемам пищи.
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param date query string false "Дата YYYY-MM-DD"
// @Success 200 {object} response.Response{data=Response}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /menu [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	menuDate, err := h.service.ResolveDate(r.URL.Query().Get("date"))
	if err != nil {
		log.Warn("invalid date", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.service.List(r.Context(), menuDate)
	if err != nil {
		if errors.Is(err, menu.ErrInvalidDate) {
			response.WriteError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		log.Error("failed to list menu", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to load menu")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(Response{
		Date:     menuDate,
		Sections: models.GroupByMealType(items),
	}))
}
