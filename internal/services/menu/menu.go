// Package menu содержит бизнес-логику меню: чтение с кешированием и правки администратора.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/magabrotheeeer/canteen/internal/cache"
	"github.com/magabrotheeeer/canteen/internal/cutoff"
	"github.com/magabrotheeeer/canteen/internal/lib/dates"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
	"github.com/magabrotheeeer/canteen/internal/models"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
)

var (
	// ErrInvalidItem позиция меню не прошла проверку после нормализации.
	ErrInvalidItem = errors.New("invalid menu item")
	// ErrInvalidDate дата меню не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid menu date")
)

// Repository описывает хранилище позиций меню.
type Repository interface {
	ListMenuItems(ctx context.Context, menuDate string) ([]*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id, name, description string) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) (string, error)
}

// Cache описывает кеш меню по дате.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// Service реализует операции с меню.
type Service struct {
	repo  Repository
	cache Cache
	clock cutoff.Clock
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создает Service. ttl задает время жизни меню в кеше.
func NewService(repo Repository, cache Cache, clock cutoff.Clock, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: clock,
		ttl:   ttl,
		log:   log,
	}
}

// TargetDate дата, на которую сейчас идет выбор: завтра по часам сервиса.
func (s *Service) TargetDate() string {
	return dates.FormatYMD(dates.Tomorrow(s.clock.Now()))
}

// ResolveDate возвращает menuDate, если он задан и корректен, иначе TargetDate.
func (s *Service) ResolveDate(menuDate string) (string, error) {
	const op = "menu.ResolveDate"
	if menuDate == "" {
		return s.TargetDate(), nil
	}
	if _, err := dates.ParseYMD(menuDate); err != nil {
		return "", fmt.Errorf("%s: %w: %q", op, ErrInvalidDate, menuDate)
	}
	return menuDate, nil
}

// List возвращает меню на дату, сначала из кеша.
func (s *Service) List(ctx context.Context, menuDate string) ([]*models.MenuItem, error) {
	const op = "menu.List"
	menuDate, err := s.ResolveDate(menuDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Версия читается до запроса в БД: если правка успеет между чтением
	// и Set, устаревший список ляжет под старый ключ и больше не прочитается.
	var version int64
	if _, err := s.cache.Get(ctx, cache.MenuVersionKey(menuDate), &version); err != nil {
		s.log.Warn("failed to read menu version, bypassing cache", slog.String("op", op), sl.Err(err))
		items, err := s.repo.ListMenuItems(ctx, menuDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return items, nil
	}
	key := cache.MenuKey(menuDate, version)

	var cached []*models.MenuItem
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read menu from cache", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	items, err := s.repo.ListMenuItems(ctx, menuDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
		s.log.Warn("failed to cache menu", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
	return items, nil
}

// Get возвращает позицию меню по id.
func (s *Service) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	const op = "menu.Get"
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Add добавляет позицию в меню. Без даты позиция попадает в меню на завтра.
func (s *Service) Add(ctx context.Context, createdBy string, req models.DummyMenuItem) (*models.MenuItem, error) {
	const op = "menu.Add"
	name, description, err := normalize(req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	mealType := models.MealType(strings.TrimSpace(req.MealType))
	if !mealType.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown meal type %q", op, ErrInvalidItem, req.MealType)
	}
	menuDate, err := s.ResolveDate(strings.TrimSpace(req.MenuDate))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item := models.MenuItem{
		Name:        name,
		Description: description,
		MealType:    mealType,
		MenuDate:    menuDate,
	}
	if createdBy != "" {
		item.CreatedBy = &createdBy
	}
	created, err := s.repo.CreateMenuItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, op, menuDate)
	return created, nil
}

// Update меняет название и описание позиции.
func (s *Service) Update(ctx context.Context, id string, req models.DummyMenuItemUpdate) (*models.MenuItem, error) {
	const op = "menu.Update"
	name, description, err := normalize(req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	updated, err := s.repo.UpdateMenuItem(ctx, id, name, description)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, op, updated.MenuDate)
	return updated, nil
}

// Delete удаляет позицию вместе с отметками сотрудников.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "menu.Delete"
	menuDate, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, op, menuDate)
	return nil
}

// invalidate переводит меню на дату в новую версию. Списки под прежними
// ключами остаются в Redis до истечения ttl, но уже не читаются.
func (s *Service) invalidate(ctx context.Context, op, menuDate string) {
	key := cache.MenuVersionKey(menuDate)
	if _, err := s.cache.Incr(ctx, key); err != nil {
		s.log.Warn("failed to bump menu version", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

func normalize(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	switch {
	case name == "":
		return "", "", fmt.Errorf("%w: name is required", ErrInvalidItem)
	case utf8.RuneCountInString(name) > maxNameLength:
		return "", "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidItem, maxNameLength)
	case utf8.RuneCountInString(description) > maxDescriptionLength:
		return "", "", fmt.Errorf("%w: description is longer than %d characters", ErrInvalidItem, maxDescriptionLength)
	}
	return name, description, nil
}
