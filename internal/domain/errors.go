package domain

import "errors"

// Error kinds. Package-level sentinels wrap one of these so the transport layer
// can map any failure with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransient           = errors.New("transient error")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
)

// Store errors shared by the Postgres repositories and the in-memory store.
var (
	ErrBookingNotFound  = errors.New("store: booking not found")
	ErrBookingOverlap   = errors.New("store: booking overlaps an existing booking")
	ErrRoomNotFound     = errors.New("store: room not found")
	ErrUserNotFound     = errors.New("store: user balance not found")
	ErrBalanceTooLow    = errors.New("store: balance too low")
	ErrBalanceExpired   = errors.New("store: balance expired")
	ErrInvalidBalance   = errors.New("store: unknown balance field")
	ErrStatusTransition = errors.New("store: booking status changed concurrently")
	// ErrSerializationConflict marks SQLSTATE 40001 from any statement of a serializable transaction.
	ErrSerializationConflict = errors.New("store: concurrent transaction conflict")
)
