package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusToBeConfirmed BookingStatus = "to_be_confirmed"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusRescheduled   BookingStatus = "rescheduled"
)

type PaymentMethod string

const (
	PaymentToken PaymentMethod = "token"
	PaymentCash  PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// CancelledBy tells user cancellations (which count toward the monthly quota) from admin rejections.
type CancelledBy string

const (
	CancelledByUser  CancelledBy = "user"
	CancelledByAdmin CancelledBy = "admin"
)

// CancellationFee is the fee outcome recorded on a cancelled booking.
type CancellationFee string

const (
	FeeFree    CancellationFee = "free"
	FeeCharged CancellationFee = "charged"
	FeeUnpaid  CancellationFee = "unpaid"
)

// Booking is a reservation of a room over [StartTime, EndTime).
type Booking struct {
	ID            uuid.UUID
	RoomID        int64
	UserID        uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	Status        BookingStatus
	PaymentMethod PaymentMethod
	BalanceSource BalanceField // empty for cash
	PaymentStatus PaymentStatus
	TotalCost     int
	Equipment     bool
	ReceiptURL    *string
	Notes         *string

	CancelledAt        *time.Time
	CancellationReason *string
	CancelledBy        *CancelledBy
	CancellationFee    *CancellationFee
	HoursBeforeStart   *float64

	RescheduledTo *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocks reports whether the booking occupies its room.
func (b *Booking) Blocks() bool {
	return b.Status != StatusCancelled && b.Status != StatusRescheduled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusToBeConfirmed || b.Status == StatusConfirmed
}

// IsTerminal reports cancelled or rescheduled bookings.
func (b *Booking) IsTerminal() bool {
	return !b.Blocks()
}

func (b *Booking) IsTokenPaid() bool {
	return b.PaymentMethod == PaymentToken
}

// AcceptsReceipt reports whether a receipt upload may move the booking to to_be_confirmed.
func (b *Booking) AcceptsReceipt() bool {
	return b.PaymentMethod == PaymentCash && (b.Status == StatusPending || b.Status == StatusToBeConfirmed)
}

func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// HoursBefore returns (start - now) in hours. Negative once the booking has started.
func (b *Booking) HoursBefore(now time.Time) float64 {
	return b.StartTime.Sub(now).Hours()
}

// FeeSource is the balance a cancellation fee is taken from.
func (b *Booking) FeeSource() BalanceField {
	if b.IsTokenPaid() && b.BalanceSource != "" {
		return b.BalanceSource
	}
	return BalanceTokens
}

// BookingFilter narrows range queries. Zero values mean no restriction.
type BookingFilter struct {
	RoomID           *int64
	UserID           *uuid.UUID
	Status           *BookingStatus
	ExcludeBookingID *uuid.UUID
	IncludeInactive  bool // include cancelled and rescheduled
}

// StatusUpdate carries the fields written together with a status change.
type StatusUpdate struct {
	Status             BookingStatus
	PaymentStatus      *PaymentStatus
	ReceiptURL         *string
	CancelledAt        *time.Time
	CancellationReason *string
	CancelledBy        *CancelledBy
	CancellationFee    *CancellationFee
	HoursBeforeStart   *float64
	RescheduledTo      *uuid.UUID
}

// Apply copies the update onto b.
func (u StatusUpdate) Apply(b *Booking) {
	b.Status = u.Status
	if u.PaymentStatus != nil {
		b.PaymentStatus = *u.PaymentStatus
	}
	if u.ReceiptURL != nil {
		b.ReceiptURL = u.ReceiptURL
	}
	if u.CancelledAt != nil {
		b.CancelledAt = u.CancelledAt
	}
	if u.CancellationReason != nil {
		b.CancellationReason = u.CancellationReason
	}
	if u.CancelledBy != nil {
		b.CancelledBy = u.CancelledBy
	}
	if u.CancellationFee != nil {
		b.CancellationFee = u.CancellationFee
	}
	if u.HoursBeforeStart != nil {
		b.HoursBeforeStart = u.HoursBeforeStart
	}
	if u.RescheduledTo != nil {
		b.RescheduledTo = u.RescheduledTo
	}
}
