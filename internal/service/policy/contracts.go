package policy

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// CancellationRepository returns user-initiated cancellations made in [from,to)
type CancellationRepository interface {
	ListUserCancellations(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
