package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/pkg/types"
)

// StartRequest asks for start options of one room on one date
type StartRequest struct {
	RoomID           int64
	Date             time.Time // calendar date, interpreted in the venue timezone
	ExcludeBookingID *uuid.UUID
}

// EndRequest asks for end options after a chosen start
type EndRequest struct {
	RoomID           int64
	Date             time.Time
	StartTime        types.TimeString
	ExcludeBookingID *uuid.UUID
}

// Response lists time options for the date.
// Degraded is set when bookings could not be loaded and the unfiltered grid was returned.
type Response struct {
	RoomID   int64
	Date     time.Time
	Options  []types.TimeString
	Degraded bool
}
