package domain

import (
	"fmt"
	"time"

	"github.com/Oso5408/ofcoz-booking/pkg/types"
)

// OperatingHours is the venue's daily booking window in its local timezone.
type OperatingHours struct {
	OpenHour         int
	CloseHour        int
	StepMinutes      int
	MinNoticeMinutes int
	Location         *time.Location
}

// DefaultOperatingHours is 10:00–22:00 in 30-minute steps.
func DefaultOperatingHours(loc *time.Location) OperatingHours {
	return OperatingHours{
		OpenHour:         DefaultOpenHour,
		CloseHour:        DefaultCloseHour,
		StepMinutes:      DefaultSlotStepMinutes,
		MinNoticeMinutes: DefaultMinNoticeMinutes,
		Location:         loc,
	}
}

// Day returns opening and closing instants for the calendar date of day.
func (h OperatingHours) Day(day time.Time) (open, close time.Time) {
	y, m, d := day.In(h.Location).Date()
	open = time.Date(y, m, d, h.OpenHour, 0, 0, 0, h.Location)
	close = time.Date(y, m, d, h.CloseHour, 0, 0, 0, h.Location)
	return open, close
}

// OnGrid reports whether t is a step boundary within the day.
func (h OperatingHours) OnGrid(t time.Time) bool {
	local := t.In(h.Location)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	return (local.Hour()*60+local.Minute())%h.StepMinutes == 0
}

// Within reports whether [start,end) lies inside the operating window of start's day.
func (h OperatingHours) Within(start, end time.Time) bool {
	open, close := h.Day(start)
	return !start.Before(open) && !end.After(close)
}

// SameDay reports whether a and b fall on the same local calendar date.
func (h OperatingHours) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(h.Location).Date()
	by, bm, bd := b.In(h.Location).Date()
	return ay == by && am == bm && ad == bd
}

// Interval validation errors
var (
	ErrIntervalOrder    = fmt.Errorf("%w: booking: end must be after start", ErrValidation)
	ErrIntervalTooShort = fmt.Errorf("%w: booking: shorter than %d minutes", ErrValidation, MinBookingDurationMinutes)
	ErrIntervalOffGrid  = fmt.Errorf("%w: booking: times must be on the slot grid", ErrValidation)
	ErrIntervalClosed   = fmt.Errorf("%w: booking: outside operating hours", ErrValidation)
	ErrIntervalTooLate  = fmt.Errorf("%w: booking: start is past or inside the notice period", ErrValidation)
)

// ValidateInterval checks a requested booking interval against the window at now.
// Start must be strictly after now plus the notice period, the same rule start options use.
func (h OperatingHours) ValidateInterval(start, end, now time.Time) error {
	if !start.Before(end) {
		return ErrIntervalOrder
	}
	if end.Sub(start) < time.Duration(MinBookingDurationMinutes)*time.Minute {
		return ErrIntervalTooShort
	}
	if !h.OnGrid(start) || !h.OnGrid(end) {
		return ErrIntervalOffGrid
	}
	if !h.Within(start, end) {
		return ErrIntervalClosed
	}
	if !start.After(now.Add(time.Duration(h.MinNoticeMinutes) * time.Minute)) {
		return ErrIntervalTooLate
	}
	return nil
}

// TimeSlot is one start option on the grid.
type TimeSlot struct {
	Start types.TimeString
	At    time.Time
}
