// Package me реализует HTTP-обработчик профиля текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// Service возвращает профиль.
type Service interface {
	Profile(ctx context.Context, id string) (*models.Profile, error)
}

// Handler обрабатывает GET /me.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий профиль
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteError(w, r, http.StatusNotFound, "profile not found")
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to load profile")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(profile))
}
