// Package remove реализует HTTP-обработчик удаления позиции меню.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// Service удаляет позицию меню.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает DELETE /menu/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить позицию меню
// @Description Удаляет позицию вместе с отметками сотрудников.
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID позиции"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /menu/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode id from url")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteError(w, r, http.StatusNotFound, "menu item not found")
			return
		}
		log.Error("failed to delete menu item", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not delete menu item")
		return
	}

	log.Info("menu item deleted", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_id": id,
	}))
}
