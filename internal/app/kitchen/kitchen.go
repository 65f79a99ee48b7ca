// Package kitchen содержит приложение отправки сводки заказов на кухню после отсечки.
package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/canteen/internal/config"
	"github.com/magabrotheeeer/canteen/internal/cutoff"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/rabbitmq"
	"github.com/magabrotheeeer/canteen/internal/services/notifier"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// App представляет приложение кухонной сводки.
type App struct {
	notifier *notifier.Notifier
	conn     *amqp.Connection
	ch       *amqp.Channel
	db       *repository.Storage
	logger   *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	var err error
	for i := 0; i < 10; i++ {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New создает новый экземпляр приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "kitchen.New"
	clock, err := cutoff.NewSystemClock(cfg.Cutoff.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	gate := cutoff.NewGate(clock, cutoff.WithCutoff(cfg.Cutoff.Hour, cfg.Cutoff.Minute))

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.KitchenTopology())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(ctx, db); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, err
	}

	publisher := rabbitmq.NewPublisher(ch, rabbitmq.KitchenExchange)

	return &App{
		notifier: notifier.New(db, publisher, gate, clock.Location(), logger),
		conn:     conn,
		ch:       ch,
		db:       db,
		logger:   logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

func (a *App) close() {
	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}

// Run запускает ежедневную отправку сводки и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	if err := a.notifier.Start(ctx); err != nil {
		a.close()
		return err
	}

	<-ctx.Done()

	a.logger.Info("shutting down kitchen digest service")
	a.notifier.Stop()
	a.close()
	return nil
}

// RunOnce отправляет сводку один раз, если выбор уже закрыт.
func (a *App) RunOnce(ctx context.Context) error {
	defer a.close()
	_, err := a.notifier.RunOnce(ctx)
	return err
}

// Consume читает сводки из очереди кухни и пишет их в лог.
func (a *App) Consume(ctx context.Context) error {
	defer a.close()
	return rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.KitchenQueue, a.logger, DigestLogger(a.logger))
}

// DigestLogger возвращает обработчик сообщений, который пишет сводку в лог.
func DigestLogger(logger *slog.Logger) func([]byte) error {
	return func(body []byte) error {
		var digest models.KitchenDigest
		if err := json.Unmarshal(body, &digest); err != nil {
			return fmt.Errorf("kitchen.DigestLogger: %w", err)
		}
		logger.Info("kitchen digest received",
			slog.String("date", digest.Date),
			slog.Time("generated_at", digest.GeneratedAt),
			slog.Int("total", digest.Total),
		)
		for _, item := range digest.Items {
			logger.Info("kitchen digest item",
				slog.String("date", digest.Date),
				slog.String("meal_type", item.MealType.Label()),
				slog.String("name", item.Name),
				slog.Int("count", item.Count),
			)
		}
		return nil
	}
}
