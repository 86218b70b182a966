package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// BookingRepository persists the new booking
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BalanceRepository debits the balance a token booking is paid from
type BalanceRepository interface {
	AdjustBalance(ctx context.Context, userID uuid.UUID, field domain.BalanceField, delta int, now time.Time) (*domain.UserBalance, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// ConflictChecker is the pre-insert availability check
type ConflictChecker interface {
	CheckAvailability(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

// SubmitGuard suppresses duplicate submissions of the same request.
// acquired is false when another submission holds key.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (acquired bool, release func(), err error)
}

type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent)
}

// TransactionManager runs fn in a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider is the clock, replaceable in tests
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
