package domain

import "time"

// CancellationStats summarizes a user's cancellations in one calendar month.
type CancellationStats struct {
	MonthStart                 time.Time
	Total                      int
	FreeUsed                   int
	FreeUsedEarly              int // made 48h or more before start
	FreeUsedLate               int // made under 48h before start
	Charged                    int
	FreeCancellationsRemaining int
}

// PolicyReason explains a policy decision.
type PolicyReason string

const (
	ReasonWithinFreeQuota       PolicyReason = "within_free_quota"
	ReasonMonthlyQuotaExhausted PolicyReason = "monthly_quota_exhausted"
	ReasonLateQuotaExhausted    PolicyReason = "late_quota_exhausted"
)

// PolicyDecision is the outcome of assessing one cancellation.
type PolicyDecision struct {
	ShouldDeduct bool
	Reason       PolicyReason
	HoursBefore  float64
	Stats        CancellationStats
}

// IsEarly reports whether a cancellation hoursBefore start counts as 48h or more.
func IsEarly(hoursBefore float64) bool {
	return hoursBefore >= FreeCancellationThresholdHours
}

// MonthBounds returns the calendar month containing t, in loc, as [start,end).
func MonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
