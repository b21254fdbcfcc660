package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	checkAvailability "github.com/glamslot/booking-service/internal/usecase/check_availability"
)

const (
	msgInvalidArtistID  = "invalid artist ID"
	msgInvalidServiceID = "invalid service ID"
	msgInvalidQuery     = "invalid date or startTime, expected YYYY-MM-DD and HH:MM"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/services/{serviceId}/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	artistID, err := strconv.ParseInt(vars["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET check-availability - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET check-availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(artistID, serviceID,
		query.Get("date"), query.Get("startTime"), query.Get("addOnIds"))
	if err != nil {
		h.logger.Warn("GET check-availability - Invalid query: artist_id=%d, error=%v", artistID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("GET check-availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET check-availability - Invalid input: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET check-availability - Failed: artist_id=%d, service_id=%d, error=%v",
				artistID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET check-availability - artist_id=%d, service_id=%d, available=%v",
		artistID, serviceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
