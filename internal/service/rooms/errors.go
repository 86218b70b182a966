package rooms

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrRoomNotFound is returned for unknown and hidden rooms
	ErrRoomNotFound = fmt.Errorf("%w: rooms: room not found", domain.ErrNotFound)

	// ErrInternal is returned when the store fails
	ErrInternal = fmt.Errorf("%w: rooms: internal error", domain.ErrTransient)
)
