package models

import "time"

// MealSelection отметка пользователя о выборе позиции меню на дату.
type MealSelection struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MenuItemID    string    `json:"menu_item_id"`
	SelectionDate string    `json:"selection_date"`
	IsSelected    bool      `json:"is_selected"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SelectionWithProfile подтверждённый выбор вместе с данными сотрудника и блюда.
type SelectionWithProfile struct {
	MealSelection
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	MenuItemName string   `json:"menu_item_name"`
	MealType     MealType `json:"meal_type"`
}

// ItemCount количество подтверждённых выборов позиции.
type ItemCount struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	MealType   MealType `json:"meal_type"`
	Count      int      `json:"count"`
}

// SelectionSummary сводка выбора на дату для администратора.
type SelectionSummary struct {
	Date       string                  `json:"date"`
	Total      int                     `json:"total"`
	Selections []*SelectionWithProfile `json:"selections"`
	Items      []*ItemCount            `json:"items"`
}

// ToggleResult результат попытки переключить выбор.
// Applied равен false, если выбор уже закрыт: это штатная ситуация, а не ошибка.
type ToggleResult struct {
	Applied   bool           `json:"applied"`
	Selection *MealSelection `json:"selection,omitempty"`
}

// KitchenDigest сводка для кухни, отправляемая после отсечки.
type KitchenDigest struct {
	Date        string       `json:"date"`
	GeneratedAt time.Time    `json:"generated_at"`
	Total       int          `json:"total"`
	Items       []*ItemCount `json:"items"`
}
