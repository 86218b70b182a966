package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// BookingRepository is the read side of the booking store
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByDateRange(ctx context.Context, from, to time.Time, filter domain.BookingFilter) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error)
}

type BalanceRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.UserBalance, error)
}

// Logger is the logging dependency
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
