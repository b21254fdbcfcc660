package get_artist_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	"github.com/glamslot/booking-service/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	artistID int64,
	userID int64,
	serviceIDStr string,
	statusStr string,
	dateStr string,
	includeInactiveStr string,
) (*models.GetArtistBookingsRequest, error) {
	req := &models.GetArtistBookingsRequest{
		UserID:          userID,
		ArtistID:        artistID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим serviceId если указан
	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
