package get_slot_data

import (
	"context"

	getSlotData "github.com/glamslot/booking-service/internal/usecase/get_slot_data"
)

type GetSlotDataUseCase interface {
	Execute(ctx context.Context, req *getSlotData.Request) (*getSlotData.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
