package get_slot_data

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
	GetWindowsByArtist(ctx context.Context, artistID int64) ([]*domain.TimeWindow, error)
	GetBlockedIntervalsFrom(ctx context.Context, artistID int64, from time.Time) ([]*domain.BlockedInterval, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAddOnsByServiceID(ctx context.Context, serviceID int64) ([]*domain.AddOn, error)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
