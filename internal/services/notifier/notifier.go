// Package notifier после отсечки собирает сводку отметок на завтра
// и отправляет ее на кухню через RabbitMQ.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/canteen/internal/cutoff"
	"github.com/magabrotheeeer/canteen/internal/lib/dates"
	"github.com/magabrotheeeer/canteen/internal/lib/metrics"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/rabbitmq"
)

// ErrSelectionOpen сводка запрошена до отсечки.
var ErrSelectionOpen = errors.New("selection is still open")

const (
	jobTimeout = 2 * time.Minute
	// maxCutoffWait сколько задача ждет закрытия, если cron сработал чуть раньше отсечки.
	maxCutoffWait = 5 * time.Second
)

// Repository отдает количество отметок по позициям меню.
type Repository interface {
	CountSelectionsByItem(ctx context.Context, selectionDate string) ([]*models.ItemCount, error)
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Notifier ежедневная задача отправки сводки.
type Notifier struct {
	repo      Repository
	publisher Publisher
	gate      *cutoff.Gate
	cron      *cron.Cron
	log       *slog.Logger
}

// New создает Notifier. Расписание строится в локации loc, той же, что у часов gate.
func New(repo Repository, publisher Publisher, gate *cutoff.Gate, loc *time.Location, log *slog.Logger) *Notifier {
	if loc == nil {
		loc = time.Local
	}
	return &Notifier{
		repo:      repo,
		publisher: publisher,
		gate:      gate,
		cron:      cron.New(cron.WithLocation(loc), cron.WithLogger(cron.DiscardLogger)),
		log:       log,
	}
}

// CronSpec cron-выражение момента отсечки.
func (n *Notifier) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", n.gate.Minute(), n.gate.Hour())
}

// Start регистрирует задачу и запускает планировщик.
func (n *Notifier) Start(ctx context.Context) error {
	const op = "notifier.Start"
	_, err := n.cron.AddFunc(n.CronSpec(), func() {
		jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
		defer cancel()
		n.log.Info("kitchen digest job triggered", slog.String("op", op))
		if err := n.waitForCutoff(jobCtx); err != nil {
			n.log.Warn("kitchen digest skipped", slog.String("op", op), sl.Err(err))
			metrics.DigestsPublished.WithLabelValues("skipped").Inc()
			return
		}
		if _, err := n.RunOnce(jobCtx); err != nil {
			n.log.Error("kitchen digest failed", slog.String("op", op), sl.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n.cron.Start()
	n.log.Info("kitchen digest scheduler started", slog.String("op", op), slog.String("spec", n.CronSpec()))
	return nil
}

// Stop останавливает планировщик и ждет завершения запущенной задачи.
func (n *Notifier) Stop() {
	<-n.cron.Stop().Done()
	n.log.Info("kitchen digest scheduler stopped")
}

func (n *Notifier) waitForCutoff(ctx context.Context) error {
	if n.gate.Passed() {
		return nil
	}
	wait := n.gate.Instant().Sub(n.gate.Now()) + time.Millisecond
	if wait > maxCutoffWait {
		return ErrSelectionOpen
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	if !n.gate.Passed() {
		return ErrSelectionOpen
	}
	return nil
}

// BuildDigest собирает сводку на дату.
func (n *Notifier) BuildDigest(ctx context.Context, selectionDate string) (*models.KitchenDigest, error) {
	const op = "notifier.BuildDigest"
	counts, err := n.repo.CountSelectionsByItem(ctx, selectionDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return &models.KitchenDigest{
		Date:        selectionDate,
		GeneratedAt: n.gate.Now(),
		Total:       total,
		Items:       counts,
	}, nil
}

// RunOnce проверяет, что выбор закрыт, и отправляет сводку на завтра.
func (n *Notifier) RunOnce(ctx context.Context) (*models.KitchenDigest, error) {
	const op = "notifier.RunOnce"
	if !n.gate.Passed() {
		metrics.DigestsPublished.WithLabelValues("skipped").Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrSelectionOpen)
	}
	target := dates.FormatYMD(dates.Tomorrow(n.gate.Now()))

	digest, err := n.BuildDigest(ctx, target)
	if err != nil {
		metrics.DigestsPublished.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := n.publisher.Publish(ctx, rabbitmq.DigestRoutingKey, digest); err != nil {
		metrics.DigestsPublished.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.DigestsPublished.WithLabelValues("success").Inc()
	n.log.Info("kitchen digest published",
		slog.String("op", op),
		slog.String("date", digest.Date),
		slog.Int("total", digest.Total),
		slog.Int("items", len(digest.Items)),
	)
	return digest, nil
}
