package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingStore persists bookings. Implementations must reject a Create whose interval
// overlaps a blocking booking of the same room with ErrBookingOverlap.
type BookingStore interface {
	Create(ctx context.Context, booking *Booking) (*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByDateRange(ctx context.Context, from, to time.Time, filter BookingFilter) ([]*Booking, error)
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from []BookingStatus, update StatusUpdate) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *BookingStatus) ([]*Booking, error)
	ListUserCancellations(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Booking, error)
}

// UserBalanceStore holds token and package balances. AdjustBalance is a single atomic
// conditional update: a debit that would go negative fails with ErrBalanceTooLow and a
// debit of an expired balance fails with ErrBalanceExpired.
type UserBalanceStore interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*UserBalance, error)
	AdjustBalance(ctx context.Context, userID uuid.UUID, field BalanceField, delta int, now time.Time) (*UserBalance, error)
	AssignPackage(ctx context.Context, userID uuid.UUID, field BalanceField, amount int, validUntil *time.Time) (*UserBalance, error)
}

// RoomStore is the read-only room catalogue.
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*Room, error)
	List(ctx context.Context, includeHidden bool) ([]*Room, error)
}
