// Package update реализует HTTP-обработчик изменения позиции меню.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/services/menu"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// Service меняет позицию меню.
type Service interface {
	Update(ctx context.Context, id string, req models.DummyMenuItemUpdate) (*models.MenuItem, error)
}

// Handler обрабатывает PUT /menu/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить позицию меню
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID позиции"
// @Param request body models.DummyMenuItemUpdate true "Название и описание"
// @Success 200 {object} response.Response{data=models.MenuItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /menu/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.update"

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

	var req models.DummyMenuItemUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode request")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.WriteError(w, r, http.StatusNotFound, "menu item not found")
		case errors.Is(err, menu.ErrInvalidItem):
			response.WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("failed to update menu item", sl.Err(err))
			response.WriteError(w, r, http.StatusInternalServerError, "could not update menu item")
		}
		return
	}

	log.Info("menu item updated", slog.String("id", item.ID))
	render.JSON(w, r, response.StatusOKWithData(item))
}
