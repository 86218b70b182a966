package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Request struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// Response holds the retired booking and its replacement
type Response struct {
	Old *domain.Booking
	New *domain.Booking
}
