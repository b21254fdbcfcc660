package get_artist_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	"github.com/glamslot/booking-service/internal/api/middleware"
	"github.com/glamslot/booking-service/internal/service/bookings"
)

const (
	msgInvalidArtistID = "invalid artist ID"
	msgInvalidQuery    = "invalid query parameters"
	msgMissingUserID   = "missing user ID"
	msgForbidden       = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем artistId из URL
	vars := mux.Vars(r)
	artistIDStr := vars["artistId"]

	artistID, err := strconv.ParseInt(artistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{artistId}/bookings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /artists/{artistId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису из query параметров
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		artistID,
		userID,
		query.Get("serviceId"),
		query.Get("status"),
		query.Get("date"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /artists/{artistId}/bookings - Invalid query: artist_id=%d, error=%v", artistID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Получаем бронирования мастера
	result, err := h.service.GetArtistBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{artistId}/bookings - Access denied: artist_id=%d, user_id=%d",
				artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /artists/{artistId}/bookings - Invalid input: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /artists/{artistId}/bookings - Failed to get bookings: artist_id=%d, error=%v",
				artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{artistId}/bookings - Bookings retrieved successfully: artist_id=%d, count=%d",
		artistID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
