package booking

import (
	"errors"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = domain.ErrBookingNotFound

	// ErrOverlap is returned when the exclusion constraint rejects a write
	ErrOverlap = domain.ErrBookingOverlap

	// ErrBuildQuery is returned when squirrel fails to build a statement
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when a statement fails to execute
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
