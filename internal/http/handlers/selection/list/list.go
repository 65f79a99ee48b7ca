// Package list реализует HTTP-обработчик отметок текущего пользователя на завтра.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
)

// Service отдает отметки пользователя.
type Service interface {
	TargetDate() string
	Mine(ctx context.Context, userID string) ([]*models.MealSelection, error)
}

// Response отметки пользователя на дату.
type Response struct {
	Date       string                  `json:"date" example:"2024-03-16"`
	Selections []*models.MealSelection `json:"selections"`
}

// Handler обрабатывает GET /selections.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои отметки
// @Description Отметки текущего пользователя на завтра, включая снятые.
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Response}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /selections [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.selection.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	selections, err := h.service.Mine(r.Context(), userID)
	if err != nil {
		log.Error("failed to list selections", sl.Err(err), slog.String("user_id", userID))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to load selections")
		return
	}
	if selections == nil {
		selections = []*models.MealSelection{}
	}

	render.JSON(w, r, response.StatusOKWithData(Response{
		Date:       h.service.TargetDate(),
		Selections: selections,
	}))
}
