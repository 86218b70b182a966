package rooms

import (
	"context"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// RoomRepository is the room catalogue
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, includeHidden bool) ([]*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
