package add_blocked_date

import (
	"context"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания мастера
type ScheduleRepository interface {
	GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
	GetWindowsByArtistAndDay(ctx context.Context, artistID int64, day int) ([]*domain.TimeWindow, error)
	GetBlockedIntervals(ctx context.Context, artistID int64, date time.Time) ([]*domain.BlockedInterval, error)
	CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
