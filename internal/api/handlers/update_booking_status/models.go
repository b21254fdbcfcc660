package update_booking_status

import "github.com/glamslot/booking-service/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // completed | no_show
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
// userID берется из контекста авторизации
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}
