// Package canteen собирает HTTP API столовой: маршруты, middleware и запуск серверов.
package canteen

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация спецификации swagger.
	_ "github.com/magabrotheeeer/canteen/docs"

	"github.com/magabrotheeeer/canteen/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/cutoff/status"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/health"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/menu/create"
	menulist "github.com/magabrotheeeer/canteen/internal/http/handlers/menu/list"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/menu/remove"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/menu/update"
	selectionlist "github.com/magabrotheeeer/canteen/internal/http/handlers/selection/list"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/selection/summary"
	"github.com/magabrotheeeer/canteen/internal/http/handlers/selection/toggle"
	"github.com/magabrotheeeer/canteen/internal/http/middlewarectx"
)

// AuthService операции учетных записей, нужные маршрутам.
type AuthService interface {
	register.Service
	login.Service
	logout.Service
	me.Service
	middlewarectx.Service
}

// MenuService операции меню, нужные маршрутам.
type MenuService interface {
	menulist.Service
	create.Service
	update.Service
	remove.Service
}

// SelectionService операции выбора блюд, нужные маршрутам.
type SelectionService interface {
	selectionlist.Service
	toggle.Service
	summary.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Auth      AuthService
	Menu      MenuService
	Selection SelectionService
	Gate      status.Gate
	Limiter   *rate.Limiter
	Checks    map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(middlewarectx.RateLimitMiddleware(deps.Limiter, logger))
		}

		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)
		r.Get("/cutoff", status.New(logger, deps.Gate).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			r.Post("/logout", logout.New(logger, deps.Auth).ServeHTTP)
			r.Get("/me", me.New(logger, deps.Auth).ServeHTTP)
			r.Get("/menu", menulist.New(logger, deps.Menu).ServeHTTP)
			r.Get("/selections", selectionlist.New(logger, deps.Selection).ServeHTTP)
			r.Post("/selections/{itemID}/toggle", toggle.New(logger, deps.Selection).ServeHTTP)

			// Только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/menu", create.New(logger, deps.Menu).ServeHTTP)
				r.Put("/menu/{id}", update.New(logger, deps.Menu).ServeHTTP)
				r.Delete("/menu/{id}", remove.New(logger, deps.Menu).ServeHTTP)
				r.Get("/selections/summary", summary.New(logger, deps.Selection).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, deps.Checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
