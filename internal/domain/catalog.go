package domain

import "time"

// Service represents a bookable service offered by an artist
type Service struct {
	ID              int64
	ArtistID        int64
	Name            string
	Price           float64
	DurationMinutes int
	RequiresAddress bool // Выездная услуга, требует адрес клиента
	RequiresDeposit bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AddOn represents an optional extra attached to a service
// Booked add-ons extend the total duration of the booking
type AddOn struct {
	ID              int64
	ServiceID       int64
	Name            string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
}
