package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// validateRequest checks fields that do not depend on the room or the clock.
// It fills the default balance source for token payments.
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	switch req.PaymentMethod {
	case domain.PaymentToken:
		if req.BalanceSource == "" {
			req.BalanceSource = domain.BalanceTokens
		}
		if !req.BalanceSource.Valid() {
			return fmt.Errorf("%w: unknown balance source %q", ErrInvalidInput, req.BalanceSource)
		}
	case domain.PaymentCash:
		if req.BalanceSource != "" {
			return fmt.Errorf("%w: cash bookings have no balance source", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// submitKey identifies one submission for the duplicate guard.
func submitKey(req *Request) string {
	return fmt.Sprintf("submit:%s:%d:%d", req.UserID, req.RoomID, req.StartTime.Unix())
}
