package add_window

import "github.com/glamslot/booking-service/internal/service/schedule/models"

// AddWindowRequest HTTP request model
type AddWindowRequest struct {
	Day         int `json:"day"` // 0 = понедельник .. 6 = воскресенье
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
// userID берется из контекста авторизации, artistID из пути
func (r *AddWindowRequest) ToServiceRequest(artistID, userID int64) *models.AddWindowRequest {
	return &models.AddWindowRequest{
		UserID:      userID,
		ArtistID:    artistID,
		Day:         r.Day,
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
	}
}
