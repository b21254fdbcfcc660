package schedule

import (
	"context"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания мастера
type ScheduleRepository interface {
	CreateWindow(ctx context.Context, window *domain.TimeWindow) (*domain.TimeWindow, error)
	GetWindowsByArtist(ctx context.Context, artistID int64) ([]*domain.TimeWindow, error)
	GetWindowsByArtistAndDay(ctx context.Context, artistID int64, day int) ([]*domain.TimeWindow, error)
	GetWindowByID(ctx context.Context, id int64) (*domain.TimeWindow, error)
	DeleteWindow(ctx context.Context, id int64) error
	GetBlockedIntervalsFrom(ctx context.Context, artistID int64, from time.Time) ([]*domain.BlockedInterval, error)
	GetBlockedIntervalByID(ctx context.Context, id int64) (*domain.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, id int64) error
	GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
