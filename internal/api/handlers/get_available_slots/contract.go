package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/Oso5408/ofcoz-booking/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	StartOptions(ctx context.Context, req *getAvailableSlots.StartRequest) (*getAvailableSlots.Response, error)
	EndOptions(ctx context.Context, req *getAvailableSlots.EndRequest) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
