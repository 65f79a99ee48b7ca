// Package toggle реализует HTTP-обработчик переключения отметки блюда.
package toggle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/services/selection"
)

// Service переключает отметку.
type Service interface {
	Toggle(ctx context.Context, userID, menuItemID string) (*models.ToggleResult, error)
}

// Handler обрабатывает POST /selections/{itemID}/toggle.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить отметку
// @Description Отмечает или снимает отметку блюда из меню на завтра.
// @Description После отсечки возвращает applied=false и ничего не меняет.
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "ID позиции меню"
// @Success 200 {object} response.Response{data=models.ToggleResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /selections/{itemID}/toggle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.selection.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	itemID := chi.URLParam(r, "itemID")
	if _, err := uuid.Parse(itemID); err != nil {
		log.Warn("invalid item id", slog.String("item_id", itemID))
		response.WriteError(w, r, http.StatusBadRequest, "failed to decode id from url")
		return
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.service.Toggle(r.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, selection.ErrItemNotOnMenu) {
			response.WriteError(w, r, http.StatusNotFound, "menu item is not on tomorrow's menu")
			return
		}
		log.Error("failed to toggle selection", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not update selection")
		return
	}

	if !result.Applied {
		log.Info("selection closed, toggle not applied", slog.String("user_id", userID))
	}
	render.JSON(w, r, response.StatusOKWithData(result))
}
