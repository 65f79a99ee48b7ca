// Package create реализует HTTP-обработчик добавления позиции в меню.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/services/menu"
)

// Service добавляет позицию меню.
type Service interface {
	Add(ctx context.Context, createdBy string, req models.DummyMenuItem) (*models.MenuItem, error)
}

// Handler обрабатывает POST /menu.
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
// @Summary Добавить позицию меню
// @Description Без menu_date позиция добавляется в меню на завтра.
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyMenuItem true "Позиция меню"
// @Success 201 {object} response.Response{data=models.MenuItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /menu [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMenuItem
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode request")
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	item, err := h.service.Add(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrInvalidDate):
			response.WriteError(w, r, http.StatusBadRequest, "invalid menu_date, expected YYYY-MM-DD")
		case errors.Is(err, menu.ErrInvalidItem):
			response.WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("failed to add menu item", sl.Err(err))
			response.WriteError(w, r, http.StatusInternalServerError, "could not add menu item")
		}
		return
	}

	log.Info("menu item added", slog.String("id", item.ID), slog.String("menu_date", item.MenuDate))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(item))
}
