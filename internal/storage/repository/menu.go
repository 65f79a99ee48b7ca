package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/canteen/internal/models"
)

const menuItemColumns = `id, name, description, meal_type, menu_date::text, created_by, created_at, updated_at`

// ListMenuItems возвращает позиции меню на дату, упорядоченные по категории и времени создания.
func (s *Storage) ListMenuItems(ctx context.Context, menuDate string) ([]*models.MenuItem, error) {
	const op = "storage.ListMenuItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + menuItemColumns + `
			  FROM menu_items
			  WHERE menu_date = $1::date
			  ORDER BY CASE meal_type
			      WHEN 'breakfast' THEN 1
			      WHEN 'lunch' THEN 2
			      WHEN 'snacks' THEN 3
			  END, created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, menuDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetMenuItem возвращает позицию меню по ID.
func (s *Storage) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	const op = "storage.GetMenuItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	item, err := scanMenuItem(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// CreateMenuItem добавляет позицию меню и возвращает сохранённую запись.
func (s *Storage) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	const op = "storage.CreateMenuItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO menu_items (name, description, meal_type, menu_date, created_by)
			  VALUES ($1, $2, $3, $4::date, $5)
			  RETURNING ` + menuItemColumns
	created, err := scanMenuItem(s.DB.QueryRowContext(ctx, query,
		item.Name, item.Description, string(item.MealType), item.MenuDate, item.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateMenuItem меняет название и описание позиции и возвращает обновлённую запись.
func (s *Storage) UpdateMenuItem(ctx context.Context, id, name, description string) (*models.MenuItem, error) {
	const op = "storage.UpdateMenuItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE menu_items
			  SET name = $1, description = $2, updated_at = NOW()
			  WHERE id = $3
			  RETURNING ` + menuItemColumns
	updated, err := scanMenuItem(s.DB.QueryRowContext(ctx, query, name, description, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteMenuItem удаляет позицию меню вместе с отметками выбора и возвращает дату меню.
func (s *Storage) DeleteMenuItem(ctx context.Context, id string) (string, error) {
	const op = "storage.DeleteMenuItem"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM menu_items WHERE id = $1 RETURNING menu_date::text`
	var menuDate string
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&menuDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return menuDate, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row scanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var createdBy sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.MealType,
		&item.MenuDate, &createdBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if createdBy.Valid {
		item.CreatedBy = &createdBy.String
	}
	return &item, nil
}
