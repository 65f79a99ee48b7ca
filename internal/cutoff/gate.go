// Package cutoff решает, можно ли сейчас менять выбор блюд.
//
// Отсечка это фиксированное время суток (по умолчанию 21:00), которое
// каждый раз пересчитывается относительно сегодняшней даты. До отсечки
// включительно выбор открыт, после нее закрыт до следующего дня.
package cutoff

import (
	"fmt"
	"time"
)

const (
	// DefaultHour час отсечки по умолчанию.
	DefaultHour = 21
	// DefaultMinute минута отсечки по умолчанию.
	DefaultMinute = 0
)

// Remaining оставшееся до отсечки время, разложенное на часы, минуты и секунды.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// String форматирует остаток как HH:MM:SS.
func (r Remaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// IsZero сообщает, что времени не осталось.
func (r Remaining) IsZero() bool {
	return r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// Status снимок состояния отсечки, полученный за одно чтение часов.
type Status struct {
	Open      bool      `json:"open"`
	Cutoff    time.Time `json:"cutoff"`
	Remaining Remaining `json:"remaining"`
}

// Gate вычисляет состояние отсечки по часам. Не хранит состояния между
// вызовами и безопасен для конкурентного использования.
type Gate struct {
	clock  Clock
	hour   int
	minute int
}

// Option настраивает Gate.
type Option func(*Gate)

// WithCutoff задает время отсечки. Значения вне диапазона игнорируются.
func WithCutoff(hour, minute int) Option {
	return func(g *Gate) {
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return
		}
		g.hour = hour
		g.minute = minute
	}
}

// NewGate создает Gate поверх clock. Если clock равен nil, используются
// локальные системные часы.
func NewGate(clock Clock, opts ...Option) *Gate {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	g := &Gate{
		clock:  clock,
		hour:   DefaultHour,
		minute: DefaultMinute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Hour возвращает час отсечки.
func (g *Gate) Hour() int { return g.hour }

// Minute возвращает минуту отсечки.
func (g *Gate) Minute() int { return g.minute }

// Now возвращает текущее время по часам Gate.
func (g *Gate) Now() time.Time { return g.clock.Now() }

// Instant возвращает сегодняшний момент отсечки.
func (g *Gate) Instant() time.Time {
	return g.instantAt(g.clock.Now())
}

// Passed сообщает, что текущий момент строго позже отсечки.
func (g *Gate) Passed() bool {
	now := g.clock.Now()
	return now.After(g.instantAt(now))
}

// MayMutate сообщает, можно ли сейчас менять выбор.
func (g *Gate) MayMutate() bool {
	return !g.Passed()
}

// Remaining возвращает время до отсечки, после отсечки нули.
func (g *Gate) Remaining() Remaining {
	now := g.clock.Now()
	return remainingAt(now, g.instantAt(now))
}

// Status возвращает открытость, момент отсечки и остаток за одно чтение часов.
func (g *Gate) Status() Status {
	now := g.clock.Now()
	instant := g.instantAt(now)
	return Status{
		Open:      !now.After(instant),
		Cutoff:    instant,
		Remaining: remainingAt(now, instant),
	}
}

func (g *Gate) instantAt(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, g.hour, g.minute, 0, 0, now.Location())
}

func remainingAt(now, instant time.Time) Remaining {
	if now.After(instant) {
		return Remaining{}
	}
	ms := instant.Sub(now).Milliseconds()
	const (
		msPerHour   = int64(time.Hour / time.Millisecond)
		msPerMinute = int64(time.Minute / time.Millisecond)
		msPerSecond = int64(time.Second / time.Millisecond)
	)
	return Remaining{
		Hours:   int(ms / msPerHour),
		Minutes: int(ms % msPerHour / msPerMinute),
		Seconds: int(ms % msPerMinute / msPerSecond),
	}
}
