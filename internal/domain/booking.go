package domain

import (
	"time"

	"github.com/glamslot/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByArtist BookingStatus = "cancelled_by_artist"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking represents a confirmed service booking
// Every booking consumes exactly one artist unit for its full duration
type Booking struct {
	ID              int64
	ClientID        int64
	ArtistID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	HomeAddress  *string // Адрес клиента для выездных услуг
	Notes        *string

	DepositVerified bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still consumes artist capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByArtist &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByArtist
}

// BookingAddOn represents an add-on line item attached to a booking
// Line items are written in the same transaction as the booking header
type BookingAddOn struct {
	ID              int64
	BookingID       int64
	AddOnID         int64
	Name            string
	Price           float64
	DurationMinutes int
}

// ArtistBookingsFilter фильтр для получения бронирований мастера
type ArtistBookingsFilter struct {
	ArtistID        int64
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
