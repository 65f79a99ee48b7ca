// Package status реализует HTTP-обработчик состояния отсечки: открыт ли выбор
// и сколько времени до закрытия.
package status

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/canteen/internal/cutoff"
	"github.com/magabrotheeeer/canteen/internal/http/response"
	"github.com/magabrotheeeer/canteen/internal/lib/dates"
)

// Gate отдает снимок состояния отсечки.
type Gate interface {
	Status() cutoff.Status
}

// Response состояние отсечки.
type Response struct {
	Open            bool             `json:"open"`
	Cutoff          time.Time        `json:"cutoff"`
	Remaining       cutoff.Remaining `json:"remaining"`
	Countdown       string           `json:"countdown" example:"02:15:07"`
	TargetDate      string           `json:"target_date" example:"2024-03-16"`
	TargetDateLabel string           `json:"target_date_label" example:"Saturday, March 16, 2024"`
}

// Handler обрабатывает GET /cutoff.
type Handler struct {
	log  *slog.Logger
	gate Gate
}

// New создает Handler.
func New(log *slog.Logger, gate Gate) *Handler {
	return &Handler{log: log, gate: gate}
}

// ServeHTTP godoc
// @Summary Состояние отсечки
// @Description Открыт ли выбор блюд на завтра и сколько времени осталось до закрытия.
// @Tags Cutoff
// @Produce json
// @Success 200 {object} response.Response{data=Response}
// @Router /cutoff [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := h.gate.Status()
	target := dates.FormatYMD(dates.Tomorrow(st.Cutoff))
	label := dates.Tomorrow(st.Cutoff).Format(dates.LayoutLong)

	countdown := "Selection Closed"
	if st.Open {
		countdown = st.Remaining.String()
	}

	render.JSON(w, r, response.StatusOKWithData(Response{
		Open:            st.Open,
		Cutoff:          st.Cutoff,
		Remaining:       st.Remaining,
		Countdown:       countdown,
		TargetDate:      target,
		TargetDateLabel: label,
	}))
}
