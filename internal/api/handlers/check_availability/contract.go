package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ConflictChecker interface {
	CheckAvailability(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
