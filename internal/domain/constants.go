package domain

import "time"

// Operating window defaults
const (
	DefaultOpenHour           = 10
	DefaultCloseHour          = 22
	DefaultSlotStepMinutes    = 30
	DefaultMinNoticeMinutes   = 30
	DefaultTimezone           = "Asia/Hong_Kong"
	MinStartFitMinutes        = 30
	MinBookingDurationMinutes = 60
)

// Cancellation policy
const (
	// FreeCancellationThresholdHours: a cancellation made exactly this many hours
	// before start counts as an early (48h+) cancellation.
	FreeCancellationThresholdHours = 48.0
	MonthlyFreeCancellations       = 3
	MonthlyLateFreeCancellations   = 1
	CancellationFeeUnits           = 1
)

// Packages
const (
	DP20ValidityDays        = 90
	PackageUnitsPerBooking  = 1
	DefaultEquipmentTokens  = 1
	DefaultTokenValidDays   = 0 // 0 = token validity is not extended on assignment
	MaxNotesLength          = 1000
	MaxCancellationReason   = 500
	MaxReceiptFilenameBytes = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses do not occupy a room.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRescheduled,
}

// ActiveStatuses occupy a room.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusToBeConfirmed,
	StatusConfirmed,
}

// DP20Expiry returns the expiry of a DP20 package assigned at t.
func DP20Expiry(t time.Time) time.Time {
	return t.AddDate(0, 0, DP20ValidityDays)
}
