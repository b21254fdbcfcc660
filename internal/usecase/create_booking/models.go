package create_booking

import (
	"time"

	"github.com/glamslot/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID    int64            // ID клиента
	ServiceID   int64            // ID услуги (мастер резолвится из услуги)
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	AddOnIDs    []int64          // Выбранные add-on'ы (опционально)
	HomeAddress *string          // Адрес клиента для выездных услуг
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ClientID        int64
	ArtistID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName     string
	ServicePrice    float64
	AddOns          []AddOnItem
	HomeAddress     *string
	Notes           *string
	DepositVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddOnItem позиция add-on в созданном бронировании
type AddOnItem struct {
	AddOnID         int64
	Name            string
	Price           float64
	DurationMinutes int
}
