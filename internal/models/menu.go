package models

import "time"

// MealType категория приёма пищи.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnacks    MealType = "snacks"
)

// MealTypes перечисляет категории в порядке показа.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks}

var mealTypeLabels = map[MealType]string{
	MealBreakfast: "Breakfast",
	MealLunch:     "Lunch",
	MealSnacks:    "Evening Snacks",
}

// Valid сообщает, что категория известна.
func (m MealType) Valid() bool {
	_, ok := mealTypeLabels[m]
	return ok
}

// Label возвращает название категории для показа.
func (m MealType) Label() string {
	return mealTypeLabels[m]
}

// MenuItem позиция меню на конкретную дату.
// MenuDate хранится строкой в формате 2006-01-02.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MealType    MealType  `json:"meal_type"`
	MenuDate    string    `json:"menu_date"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuSection позиции одной категории.
type MenuSection struct {
	MealType MealType    `json:"meal_type"`
	Label    string      `json:"label"`
	Items    []*MenuItem `json:"items"`
}

// GroupByMealType раскладывает позиции по категориям в порядке MealTypes.
// Пустые категории сохраняются, чтобы клиент мог показать "No items available".
func GroupByMealType(items []*MenuItem) []MenuSection {
	sections := make([]MenuSection, 0, len(MealTypes))
	for _, mt := range MealTypes {
		section := MenuSection{MealType: mt, Label: mt.Label(), Items: []*MenuItem{}}
		for _, item := range items {
			if item.MealType == mt {
				section.Items = append(section.Items, item)
			}
		}
		sections = append(sections, section)
	}
	return sections
}

// DummyMenuItem принимает новую позицию меню из JSON-запроса.
// MenuDate необязателен: по умолчанию используется завтрашняя дата.
type DummyMenuItem struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	MealType    string `json:"meal_type" validate:"required,oneof=breakfast lunch snacks"`
	MenuDate    string `json:"menu_date,omitempty"`
}

// DummyMenuItemUpdate принимает изменение названия и описания позиции.
type DummyMenuItemUpdate struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
}
