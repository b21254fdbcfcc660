package create_booking

import (
	"context"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateAddOns(ctx context.Context, bookingID int64, addOns []*domain.BookingAddOn) error
	GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания мастера
type ScheduleRepository interface {
	GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error)
	GetWindowsByArtistAndDay(ctx context.Context, artistID int64, day int) ([]*domain.TimeWindow, error)
	GetBlockedIntervals(ctx context.Context, artistID int64, date time.Time) ([]*domain.BlockedInterval, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAddOnsByIDs(ctx context.Context, ids []int64) ([]*domain.AddOn, error)
}

// PaymentServiceClient интерфейс клиента платежного сервиса
type PaymentServiceClient interface {
	VerifyDeposit(ctx context.Context, clientID, serviceID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
