package get_room

import (
	"context"

	"github.com/Oso5408/ofcoz-booking/internal/service/rooms/models"
)

type RoomService interface {
	GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
