package dates

import (
	"fmt"
	"time"
)

// LayoutYMD формат даты меню и выбора.
const LayoutYMD = "2006-01-02"

// LayoutLong человекочитаемый формат, например "Monday, January 2, 2006".
const LayoutLong = "Monday, January 2, 2006"

// Tomorrow возвращает начало следующего календарного дня в локации now.
func Tomorrow(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// FormatYMD форматирует календарную дату t в локации t
func FormatYMD(t time.Time) string {
	return t.Format(LayoutYMD)
}

// ParseYMD разбирает дату в формате 2006-01-02.
func ParseYMD(s string) (time.Time, error) {
	const op = "dates.ParseYMD"
	t, err := time.Parse(LayoutYMD, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// FormatLong переводит дату 2006-01-02 в длинный формат.
func FormatLong(ymd string) (string, error) {
	t, err := ParseYMD(ymd)
	if err != nil {
		return "", err
	}
	return t.Format(LayoutLong), nil
}

// IsToday сообщает, совпадает ли дата ymd с календарной датой now.
func IsToday(ymd string, now time.Time) bool {
	return ymd == FormatYMD(now)
}
