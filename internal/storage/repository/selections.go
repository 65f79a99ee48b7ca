package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/canteen/internal/models"
)

const selectionColumns = `id, user_id, menu_item_id, selection_date::text, is_selected, created_at, updated_at`

// ListSelections возвращает отметки пользователя на дату.
func (s *Storage) ListSelections(ctx context.Context, userID, selectionDate string) ([]*models.MealSelection, error) {
	const op = "storage.ListSelections"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + selectionColumns + `
			  FROM meal_selections
			  WHERE user_id = $1 AND selection_date = $2::date
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, userID, selectionDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.MealSelection{}
	for rows.Next() {
		var sel models.MealSelection
		if err := rows.Scan(&sel.ID, &sel.UserID, &sel.MenuItemID, &sel.SelectionDate,
			&sel.IsSelected, &sel.CreatedAt, &sel.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sel)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ToggleSelection атомарно переключает отметку: при первом выборе создаёт запись
// с is_selected = true, иначе инвертирует is_selected.
func (s *Storage) ToggleSelection(ctx context.Context, userID, menuItemID, selectionDate string) (*models.MealSelection, error) {
	const op = "storage.ToggleSelection"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO meal_selections (user_id, menu_item_id, selection_date, is_selected)
			  VALUES ($1, $2, $3::date, true)
			  ON CONFLICT (user_id, menu_item_id, selection_date)
			  DO UPDATE SET is_selected = NOT meal_selections.is_selected,
			                updated_at = NOW()
			  RETURNING ` + selectionColumns
	var sel models.MealSelection
	if err := s.DB.QueryRowContext(ctx, query, userID, menuItemID, selectionDate).Scan(
		&sel.ID, &sel.UserID, &sel.MenuItemID, &sel.SelectionDate,
		&sel.IsSelected, &sel.CreatedAt, &sel.UpdatedAt); err != nil {
		// позиция удалена между проверкой в сервисе и вставкой
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sel, nil
}

// ListConfirmedSelections возвращает подтверждённые отметки на дату вместе
// с именем и email сотрудника и названием блюда.
func (s *Storage) ListConfirmedSelections(ctx context.Context, selectionDate string) ([]*models.SelectionWithProfile, error) {
	const op = "storage.ListConfirmedSelections"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.menu_item_id, s.selection_date::text, s.is_selected,
			      s.created_at, s.updated_at, p.full_name, p.email, m.name, m.meal_type
			  FROM meal_selections s
			  JOIN profiles p ON p.id = s.user_id
			  JOIN menu_items m ON m.id = s.menu_item_id
			  WHERE s.selection_date = $1::date
			    AND s.is_selected = true
			  ORDER BY p.full_name, m.name`
	rows, err := s.DB.QueryContext(ctx, query, selectionDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.SelectionWithProfile{}
	for rows.Next() {
		var sel models.SelectionWithProfile
		if err := rows.Scan(&sel.ID, &sel.UserID, &sel.MenuItemID, &sel.SelectionDate,
			&sel.IsSelected, &sel.CreatedAt, &sel.UpdatedAt,
			&sel.FullName, &sel.Email, &sel.MenuItemName, &sel.MealType); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sel)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSelectionsByItem считает подтверждённые отметки по каждой позиции меню на дату,
// включая позиции без отметок.
func (s *Storage) CountSelectionsByItem(ctx context.Context, menuDate string) ([]*models.ItemCount, error) {
	const op = "storage.CountSelectionsByItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.name, m.meal_type, COUNT(s.id)
			  FROM menu_items m
			  LEFT JOIN meal_selections s
			      ON s.menu_item_id = m.id
			     AND s.selection_date = m.menu_date
			     AND s.is_selected = true
			  WHERE m.menu_date = $1::date
			  GROUP BY m.id, m.name, m.meal_type
			  ORDER BY CASE m.meal_type
			      WHEN 'breakfast' THEN 1
			      WHEN 'lunch' THEN 2
			      WHEN 'snacks' THEN 3
			  END, m.name`
	rows, err := s.DB.QueryContext(ctx, query, menuDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.ItemCount{}
	for rows.Next() {
		var c models.ItemCount
		if err := rows.Scan(&c.MenuItemID, &c.Name, &c.MealType, &c.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
