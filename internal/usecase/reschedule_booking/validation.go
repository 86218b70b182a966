package reschedule_booking

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil || req.UserID == uuid.Nil {
		return fmt.Errorf("%w: booking and user are required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return nil
}

func rescheduleKey(id uuid.UUID) string {
	return "reschedule:" + id.String()
}
