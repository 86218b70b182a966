package reschedule_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, update domain.StatusUpdate) (*domain.Booking, error)
}

type BalanceRepository interface {
	AdjustBalance(ctx context.Context, userID uuid.UUID, field domain.BalanceField, delta int, now time.Time) (*domain.UserBalance, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type ConflictChecker interface {
	CheckAvailability(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error)
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
