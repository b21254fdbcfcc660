package get_slot_data

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	getSlotData "github.com/glamslot/booking-service/internal/usecase/get_slot_data"
)

const (
	msgInvalidArtistID  = "invalid artist ID"
	msgInvalidServiceID = "invalid service ID"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetSlotDataUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotDataUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/services/{serviceId}/slot-data
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	artistID, err := strconv.ParseInt(vars["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{artistId}/services/{serviceId}/slot-data - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{artistId}/services/{serviceId}/slot-data - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotData.Request{
		ArtistID:  artistID,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotData.ErrServiceNotFound), errors.Is(err, getSlotData.ErrServiceMismatch):
			h.logger.Warn("GET slot-data - Service not found: artist_id=%d, service_id=%d", artistID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlotData.ErrInvalidInput):
			h.logger.Warn("GET slot-data - Invalid input: artist_id=%d, service_id=%d", artistID, serviceID)
			handlers.RespondBadRequest(w, msgInvalidArtistID)

		default:
			h.logger.Error("GET slot-data - Failed: artist_id=%d, service_id=%d, error=%v", artistID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET slot-data - Retrieved successfully: artist_id=%d, service_id=%d, slots=%d",
		artistID, serviceID, len(result.BookedSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
