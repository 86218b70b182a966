package upload_receipt

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: upload_receipt: invalid input data", domain.ErrValidation)

	// ErrUnsupportedType is returned for files other than JPEG, PNG or PDF
	ErrUnsupportedType = fmt.Errorf("%w: upload_receipt: unsupported file type", domain.ErrValidation)

	// ErrFileTooLarge is returned when the file exceeds the configured limit
	ErrFileTooLarge = fmt.Errorf("%w: upload_receipt: file too large", domain.ErrValidation)

	ErrBookingNotFound = fmt.Errorf("%w: upload_receipt: booking not found", domain.ErrNotFound)

	ErrNotOwner = fmt.Errorf("%w: upload_receipt: booking belongs to another user", domain.ErrForbidden)

	// ErrReceiptNotAccepted is returned for token bookings and bookings past review
	ErrReceiptNotAccepted = fmt.Errorf("%w: upload_receipt: booking does not accept a receipt", domain.ErrConflict)

	// ErrStorageUnavailable is returned when the file could not be stored
	ErrStorageUnavailable = fmt.Errorf("%w: upload_receipt: receipt storage unavailable", domain.ErrTransient)

	ErrInternal = fmt.Errorf("%w: upload_receipt: internal error", domain.ErrTransient)
)
