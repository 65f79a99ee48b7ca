package cutoff

import (
	"fmt"
	"time"
)

// Clock возвращает текущий момент времени. Подменяется в тестах,
// чтобы моделировать моменты до, ровно в и после отсечки.
type Clock interface {
	Now() time.Time
}

// ClockFunc позволяет использовать обычную функцию как Clock.
type ClockFunc func() time.Time

// Now вызывает f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock читает системные часы в заданной локации.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock создает системные часы. Пустое имя зоны означает
// локальное время процесса.
func NewSystemClock(timezone string) (*SystemClock, error) {
	const op = "cutoff.NewSystemClock"
	if timezone == "" {
		return &SystemClock{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &SystemClock{loc: loc}, nil
}

// Now возвращает текущее время в локации часов.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает локацию часов.
func (c *SystemClock) Location() *time.Location {
	return c.loc
}
