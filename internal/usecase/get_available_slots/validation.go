package get_available_slots

import (
	"fmt"
)

func validateStartRequest(req *StartRequest) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateEndRequest(req *EndRequest) error {
	if err := validateStartRequest(&StartRequest{RoomID: req.RoomID, Date: req.Date}); err != nil {
		return err
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
