package review_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil || req.AdminID == uuid.Nil {
		return fmt.Errorf("%w: booking and admin are required", ErrInvalidInput)
	}
	if req.Action != ActionConfirm && req.Action != ActionCancel {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReason {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReason)
	}
	return nil
}
