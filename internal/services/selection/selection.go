// Package selection управляет отметками сотрудников на блюда следующего дня.
//
// Любое изменение отметки проходит через cutoff.Gate: после отсечки
// переключение молча не выполняется.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/canteen/internal/cutoff"
	"github.com/magabrotheeeer/canteen/internal/lib/dates"
	"github.com/magabrotheeeer/canteen/internal/lib/metrics"
	"github.com/magabrotheeeer/canteen/internal/models"
	"github.com/magabrotheeeer/canteen/internal/storage/repository"
)

// ErrItemNotOnMenu позиции нет в меню на завтра.
var ErrItemNotOnMenu = errors.New("menu item is not on tomorrow's menu")

// Repository описывает хранилище отметок и позиций меню.
type Repository interface {
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	ListSelections(ctx context.Context, userID, selectionDate string) ([]*models.MealSelection, error)
	ToggleSelection(ctx context.Context, userID, menuItemID, selectionDate string) (*models.MealSelection, error)
	ListConfirmedSelections(ctx context.Context, selectionDate string) ([]*models.SelectionWithProfile, error)
	CountSelectionsByItem(ctx context.Context, selectionDate string) ([]*models.ItemCount, error)
}

// Service реализует операции с отметками.
type Service struct {
	repo Repository
	gate *cutoff.Gate
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, gate *cutoff.Gate, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		gate: gate,
		log:  log,
	}
}

// TargetDate дата, на которую принимаются отметки.
func (s *Service) TargetDate() string {
	return dates.FormatYMD(dates.Tomorrow(s.gate.Now()))
}

// Mine возвращает отметки пользователя на завтра.
func (s *Service) Mine(ctx context.Context, userID string) ([]*models.MealSelection, error) {
	const op = "selection.Mine"
	selections, err := s.repo.ListSelections(ctx, userID, s.TargetDate())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return selections, nil
}

// Toggle переключает отметку пользователя на позицию меню завтрашнего дня.
//
// После отсечки возвращает Applied=false без ошибки и не обращается к хранилищу.
func (s *Service) Toggle(ctx context.Context, userID, menuItemID string) (*models.ToggleResult, error) {
	const op = "selection.Toggle"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID), slog.String("menu_item_id", menuItemID))

	if !s.gate.MayMutate() {
		metrics.SelectionToggles.WithLabelValues(metrics.ToggleBlocked).Inc()
		log.Info("selection is closed, toggle ignored")
		return &models.ToggleResult{Applied: false}, nil
	}

	target := s.TargetDate()
	item, err := s.repo.GetMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.SelectionToggles.WithLabelValues(metrics.ToggleRejected).Inc()
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotOnMenu)
		}
		metrics.SelectionToggles.WithLabelValues(metrics.ToggleFailed).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if item.MenuDate != target {
		metrics.SelectionToggles.WithLabelValues(metrics.ToggleRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrItemNotOnMenu)
	}

	// Повторная проверка непосредственно перед записью.
	if !s.gate.MayMutate() {
		metrics.SelectionToggles.WithLabelValues(metrics.ToggleBlocked).Inc()
		log.Info("selection closed while toggling, toggle ignored")
		return &models.ToggleResult{Applied: false}, nil
	}
	selection, err := s.repo.ToggleSelection(ctx, userID, menuItemID, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.SelectionToggles.WithLabelValues(metrics.ToggleRejected).Inc()
			log.Info("menu item removed while toggling")
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotOnMenu)
		}
		metrics.SelectionToggles.WithLabelValues(metrics.ToggleFailed).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.SelectionToggles.WithLabelValues(metrics.ToggleApplied).Inc()
	log.Debug("selection toggled", slog.Bool("is_selected", selection.IsSelected))
	return &models.ToggleResult{Applied: true, Selection: selection}, nil
}

// Summary возвращает подтвержденные отметки на дату и количество по позициям.
func (s *Service) Summary(ctx context.Context, selectionDate string) (*models.SelectionSummary, error) {
	const op = "selection.Summary"
	if selectionDate == "" {
		selectionDate = s.TargetDate()
	}
	confirmed, err := s.repo.ListConfirmedSelections(ctx, selectionDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	counts, err := s.repo.CountSelectionsByItem(ctx, selectionDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.SelectionSummary{
		Date:       selectionDate,
		Total:      len(confirmed),
		Selections: confirmed,
		Items:      counts,
	}, nil
}
