package get_available_slots

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrRoomNotFound is returned when the room does not exist or is hidden
	ErrRoomNotFound = fmt.Errorf("%w: get_available_slots: room not found", domain.ErrNotFound)

	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)
)
