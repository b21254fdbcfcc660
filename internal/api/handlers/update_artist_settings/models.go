package update_artist_settings

import "github.com/glamslot/booking-service/internal/service/schedule/models"

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	UnitCount         int `json:"unitCount"`
	BookingMonthLimit int `json:"bookingMonthLimit"`
	CancelCutoffHours int `json:"cancelCutoffHours"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
// userID берется из контекста авторизации, artistID из пути
func (r *UpdateSettingsRequest) ToServiceRequest(artistID, userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:            userID,
		ArtistID:          artistID,
		UnitCount:         r.UnitCount,
		BookingMonthLimit: r.BookingMonthLimit,
		CancelCutoffHours: r.CancelCutoffHours,
	}
}
