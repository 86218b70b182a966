package assign_package

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type BalanceRepository interface {
	AssignPackage(ctx context.Context, userID uuid.UUID, field domain.BalanceField, amount int, validUntil *time.Time) (*domain.UserBalance, error)
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
