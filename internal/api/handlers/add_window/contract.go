package add_window

import (
	"context"

	"github.com/glamslot/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	AddWindow(ctx context.Context, req *models.AddWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
