package canteen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/canteen/internal/cache"
	"github.com/magabrotheeeer/canteen/internal/config"
	"github.com/magabrotheeeer/canteen/internal/cutoff"
	healthhandler "github.com/magabrotheeeer/canteen/internal/http/handlers/health"
	"github.com/magabrotheeeer/canteen/internal/lib/jwt"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/migrations"
	"github.com/magabrotheeeer/canteen/internal/services/auth"
	"github.com/magabrotheeeer/canteen/internal/services/menu"
	"github.com/magabrotheeeer/canteen/internal/services/selection"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthProbeInterval = 10 * time.Second
)

// App HTTP API столовой и gRPC-сервер проверки состояния.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
}

// New подключает хранилища, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "canteen.New"

	clock, err := cutoff.NewSystemClock(cfg.Cutoff.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	gate := cutoff.NewGate(clock, cutoff.WithCutoff(cfg.Cutoff.Hour, cfg.Cutoff.Minute))

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, nil)
	authService := auth.NewService(db, jwtMaker, cacheRedis, cfg.AdminEmails, logger)
	menuService := menu.NewService(db, cacheRedis, clock, cfg.MenuTTL, logger)
	selectionService := selection.NewService(db, gate, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:      authService,
		Menu:      menuService,
		Selection: selectionService,
		Gate:      gate,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		Checks: map[string]healthhandler.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	app := &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	if cfg.GRPCHealthAddress != "" {
		lis, err := net.Listen("tcp", cfg.GRPCHealthAddress)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.listener = lis
		app.grpcServer = grpc.NewServer()
		app.health = health.NewServer()
		healthpb.RegisterHealthServer(app.grpcServer, app.health)
	}

	logger.Info("cutoff configured",
		slog.Int("hour", gate.Hour()),
		slog.Int("minute", gate.Minute()),
		slog.String("timezone", clock.Location().String()),
	)
	return app, nil
}

// Run запускает серверы и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	if a.grpcServer != nil {
		a.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		go a.watchHealth(ctx)
		go func() {
			a.logger.Info("gRPC health service listening on", slog.String("address", a.listener.Addr().String()))
			if err := a.grpcServer.Serve(a.listener); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		a.shutdown()
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server gracefully")
		return a.shutdown()
	}
}

// watchHealth переводит gRPC-статус в NOT_SERVING, пока недоступна база или Redis.
func (a *App) watchHealth(ctx context.Context) {
	ticker := time.NewTicker(healthProbeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, healthProbeInterval/2)
			status := healthpb.HealthCheckResponse_SERVING
			if err := a.db.Ping(probeCtx); err != nil {
				a.logger.Warn("postgres ping failed", sl.Err(err))
				status = healthpb.HealthCheckResponse_NOT_SERVING
			} else if err := a.cache.Ping(probeCtx); err != nil {
				a.logger.Warn("redis ping failed", sl.Err(err))
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
			cancel()
			a.health.SetServingStatus("", status)
		}
	}
}

func (a *App) shutdown() error {
	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.health != nil {
		a.health.Shutdown()
	}
	err := a.server.Shutdown(timeoutCtx)
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.close()
	return err
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close postgres", sl.Err(err))
	}
}
