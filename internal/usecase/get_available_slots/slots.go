package get_available_slots

import (
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/types"
)

// generateStartOptions lists start times for the day of date on the hours grid.
//
// A start t is offered when [t, t+MinStartFitMinutes) fits before closing and, for
// today, t is strictly after now+MinNoticeMinutes. Passing nil bookings yields the
// unfiltered grid.
func generateStartOptions(hours domain.OperatingHours, date, now time.Time, bookings []*domain.Booking) []types.TimeString {
	if isDateInPast(hours, date, now) {
		return []types.TimeString{}
	}

	open, close := hours.Day(date)
	step := time.Duration(hours.StepMinutes) * time.Minute
	fit := time.Duration(domain.MinStartFitMinutes) * time.Minute

	// 1. Today starts after the notice period
	var notBefore time.Time
	if hours.SameDay(date, now) {
		notBefore = now.Add(time.Duration(hours.MinNoticeMinutes) * time.Minute)
	}

	// 2. Walk the grid, skipping slots that cannot fit or are taken
	options := make([]types.TimeString, 0)
	for slot := open; !slot.Add(fit).After(close); slot = slot.Add(step) {
		if !notBefore.IsZero() && !slot.After(notBefore) {
			continue
		}
		if overlapsAny(slot, slot.Add(fit), bookings) {
			continue
		}
		options = append(options, types.NewTimeString(slot))
	}

	return options
}

// generateEndOptions lists end times for a booking starting at start.
//
// Options begin at start+MinBookingDurationMinutes and advance by the grid step up to
// the earlier of closing time and the next booking that begins after start. A start
// that falls inside an existing booking, or is not after now+MinNoticeMinutes, has no
// valid end.
func generateEndOptions(hours domain.OperatingHours, startAt, now time.Time, bookings []*domain.Booking) []types.TimeString {
	open, close := hours.Day(startAt)
	if startAt.Before(open) || !startAt.Before(close) {
		return []types.TimeString{}
	}
	if !startAt.After(now.Add(time.Duration(hours.MinNoticeMinutes) * time.Minute)) {
		return []types.TimeString{}
	}

	// 1. Bound by the next booking; a start inside one has no end
	bound := close
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		if domain.Contains(b.StartTime, b.EndTime, startAt) {
			return []types.TimeString{}
		}
		if b.StartTime.After(startAt) && b.StartTime.Before(bound) {
			bound = b.StartTime
		}
	}

	// 2. Ends from the minimum duration up to the bound
	step := time.Duration(hours.StepMinutes) * time.Minute
	options := make([]types.TimeString, 0)
	for end := startAt.Add(time.Duration(domain.MinBookingDurationMinutes) * time.Minute); !end.After(bound); end = end.Add(step) {
		options = append(options, types.NewTimeString(end))
	}

	return options
}

// overlapsAny reports whether [start,end) overlaps a blocking booking.
// Adjacent intervals (one ends exactly where the other starts) do not overlap.
func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// isDateInPast reports whether date's calendar day is before today's, in venue time.
func isDateInPast(hours domain.OperatingHours, date, now time.Time) bool {
	dy, dm, dd := date.In(hours.Location).Date()
	ny, nm, nd := now.In(hours.Location).Date()
	dateOnly := time.Date(dy, dm, dd, 0, 0, 0, 0, hours.Location)
	nowOnly := time.Date(ny, nm, nd, 0, 0, 0, 0, hours.Location)
	return dateOnly.Before(nowOnly)
}
