package add_blocked_date

import (
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	addBlockedDate "github.com/glamslot/booking-service/internal/usecase/add_blocked_date"
	"github.com/glamslot/booking-service/pkg/types"
)

// AddBlockedDateRequest HTTP request model
type AddBlockedDateRequest struct {
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
	Units     int    `json:"units"`     // Сколько мест блокируется
}

// BlockedDateResponse HTTP response model
type BlockedDateResponse struct {
	ID          int64     `json:"id"`
	ArtistID    int64     `json:"artistId"`
	Date        string    `json:"date"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	Units       int       `json:"units"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
// userID берется из контекста авторизации, artistID из пути
func (r *AddBlockedDateRequest) ToUseCaseRequest(artistID, userID int64) (*addBlockedDate.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &addBlockedDate.Request{
		UserID:    userID,
		ArtistID:  artistID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Units:     r.Units,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addBlockedDate.Response) *BlockedDateResponse {
	return &BlockedDateResponse{
		ID:          resp.ID,
		ArtistID:    resp.ArtistID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartMinute: resp.StartMinute,
		EndMinute:   resp.EndMinute,
		Units:       resp.Units,
		CreatedAt:   resp.CreatedAt,
	}
}
