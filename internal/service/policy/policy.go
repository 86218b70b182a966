package policy

import (
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// Summarize counts cancellations made in the month starting at monthStart.
//
// A cancellation whose fee outcome is missing is counted as free. Its timing comes from
// HoursBeforeStart, or from StartTime-CancelledAt for rows written without it.
func Summarize(monthStart time.Time, cancellations []*domain.Booking) domain.CancellationStats {
	stats := domain.CancellationStats{
		MonthStart:                 monthStart,
		FreeCancellationsRemaining: domain.MonthlyFreeCancellations,
	}

	for _, b := range cancellations {
		fee := domain.FeeFree
		if b.CancellationFee != nil {
			fee = *b.CancellationFee
		}
		stats = Record(stats, fee, hoursBefore(b))
	}
	return stats
}

// Record returns stats with one more cancellation of the given outcome.
func Record(stats domain.CancellationStats, fee domain.CancellationFee, hoursBefore float64) domain.CancellationStats {
	stats.Total++

	if fee != domain.FeeFree {
		stats.Charged++
		return stats
	}

	stats.FreeUsed++
	if domain.IsEarly(hoursBefore) {
		stats.FreeUsedEarly++
	} else {
		stats.FreeUsedLate++
	}

	stats.FreeCancellationsRemaining = domain.MonthlyFreeCancellations - stats.FreeUsed
	if stats.FreeCancellationsRemaining < 0 {
		stats.FreeCancellationsRemaining = 0
	}
	return stats
}

// Decide applies the monthly quota to one cancellation.
// It is free iff fewer than MonthlyFreeCancellations free ones were used and either it
// is made 48h or more ahead or the late allowance is still unused.
func Decide(stats domain.CancellationStats, hoursBefore float64) domain.PolicyDecision {
	decision := domain.PolicyDecision{
		HoursBefore: hoursBefore,
		Stats:       stats,
	}

	switch {
	case stats.FreeUsed >= domain.MonthlyFreeCancellations:
		decision.ShouldDeduct = true
		decision.Reason = domain.ReasonMonthlyQuotaExhausted
	case !domain.IsEarly(hoursBefore) && stats.FreeUsedLate >= domain.MonthlyLateFreeCancellations:
		decision.ShouldDeduct = true
		decision.Reason = domain.ReasonLateQuotaExhausted
	default:
		decision.Reason = domain.ReasonWithinFreeQuota
	}

	return decision
}

func hoursBefore(b *domain.Booking) float64 {
	if b.HoursBeforeStart != nil {
		return *b.HoursBeforeStart
	}
	if b.CancelledAt != nil {
		return b.StartTime.Sub(*b.CancelledAt).Hours()
	}
	return 0
}
