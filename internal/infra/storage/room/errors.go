package room

import (
	"errors"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrRoomNotFound is returned when no room has the requested id
	ErrRoomNotFound = domain.ErrRoomNotFound

	ErrBuildQuery = errors.New("room.repository: failed to build query")
	ErrExecQuery  = errors.New("room.repository: failed to execute query")
	ErrScanRow    = errors.New("room.repository: failed to scan row")
)
