package check_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	checkAvailability "github.com/glamslot/booking-service/internal/usecase/check_availability"
	"github.com/glamslot/booking-service/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest формирует запрос use case из path и query параметров
// addOnIDs передаются через запятую: ?addOnIds=1,2,3
func ToUseCaseRequest(artistID, serviceID int64, dateStr, startTimeStr, addOnIDsStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return nil, err
	}

	var addOnIDs []int64
	if addOnIDsStr != "" {
		for _, part := range strings.Split(addOnIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			addOnIDs = append(addOnIDs, id)
		}
	}

	return &checkAvailability.Request{
		ArtistID:  artistID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
		AddOnIDs:  addOnIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:       resp.Available,
		Reason:          resp.Reason,
		DurationMinutes: resp.DurationMinutes,
	}
}
