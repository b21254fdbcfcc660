package add_blocked_date

import (
	"context"

	addBlockedDate "github.com/glamslot/booking-service/internal/usecase/add_blocked_date"
)

type AddBlockedDateUseCase interface {
	Execute(ctx context.Context, req *addBlockedDate.Request) (*addBlockedDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
