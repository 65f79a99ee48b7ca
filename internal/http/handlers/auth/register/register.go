// Package register реализует HTTP-обработчик регистрации сотрудника.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/password"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// Request входные данные регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Service регистрирует профиль.
type Service interface {
	Register(ctx context.Context, email, fullName, password string) (*models.Profile, error)
}

// Handler обрабатывает POST /register.
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
// @Summary Регистрация
// @Description Создает профиль сотрудника. Адреса из списка администраторов получают роль admin.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные профиля"
// @Success 201 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, err := h.service.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Warn("email already registered", slog.String("email", req.Email))
			response.WriteError(w, r, http.StatusConflict, "email already registered")
			return
		}
		if errors.Is(err, password.ErrTooLong) {
			log.Warn("password too long")
			response.WriteError(w, r, http.StatusUnprocessableEntity, "field Password must be at most 72 bytes")
			return
		}
		log.Error("registration failed", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "failed to register user")
		return
	}

	log.Info("profile registered", slog.String("user_id", profile.ID), slog.String("role", string(profile.Role)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(profile))
}
