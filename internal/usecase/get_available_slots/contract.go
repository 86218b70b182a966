package get_available_slots

import (
	"context"
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// BookingRepository is the read side of the booking store used for option generation
type BookingRepository interface {
	GetByDateRange(ctx context.Context, from, to time.Time, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// RoomRepository resolves the requested room
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// TimeProvider returns the current time (swapped in tests)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
