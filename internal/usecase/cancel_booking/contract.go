package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, update domain.StatusUpdate) (*domain.Booking, error)
}

type BalanceRepository interface {
	AdjustBalance(ctx context.Context, userID uuid.UUID, field domain.BalanceField, delta int, now time.Time) (*domain.UserBalance, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Policy decides whether a cancellation costs a unit
type Policy interface {
	ShouldDeductToken(ctx context.Context, userID uuid.UUID, hoursBefore float64) (domain.PolicyDecision, error)
}

type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (acquired bool, release func(), err error)
}

type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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
