package conflicts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository is the overlap query the validator needs
type BookingRepository interface {
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
