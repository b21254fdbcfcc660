package create_booking

import (
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	createBooking "github.com/glamslot/booking-service/internal/usecase/create_booking"
	"github.com/glamslot/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2026-03-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	AddOnIDs    []int64 `json:"addOnIds,omitempty"`
	HomeAddress *string `json:"homeAddress,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AddOnItem HTTP model позиции add-on
type AddOnItem struct {
	AddOnID         int64   `json:"addOnId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64       `json:"id"`
	ClientID        int64       `json:"clientId"`
	ArtistID        int64       `json:"artistId"`
	ServiceID       int64       `json:"serviceId"`
	BookingDate     string      `json:"bookingDate"`
	StartTime       string      `json:"startTime"`
	DurationMinutes int         `json:"durationMinutes"`
	Status          string      `json:"status"`
	ServiceName     string      `json:"serviceName"`
	ServicePrice    float64     `json:"servicePrice"`
	AddOns          []AddOnItem `json:"addOns,omitempty"`
	HomeAddress     *string     `json:"homeAddress,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	DepositVerified bool        `json:"depositVerified"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:    clientID,
		ServiceID:   r.ServiceID,
		Date:        bookingDate,
		StartTime:   startTime,
		AddOnIDs:    r.AddOnIDs,
		HomeAddress: r.HomeAddress,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	addOns := make([]AddOnItem, 0, len(resp.AddOns))
	for _, a := range resp.AddOns {
		addOns = append(addOns, AddOnItem{
			AddOnID:         a.AddOnID,
			Name:            a.Name,
			Price:           a.Price,
			DurationMinutes: a.DurationMinutes,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ArtistID:        resp.ArtistID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		AddOns:          addOns,
		HomeAddress:     resp.HomeAddress,
		Notes:           resp.Notes,
		DepositVerified: resp.DepositVerified,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
