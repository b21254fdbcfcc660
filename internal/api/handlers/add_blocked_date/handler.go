package add_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	"github.com/glamslot/booking-service/internal/api/middleware"
	addBlockedDate "github.com/glamslot/booking-service/internal/usecase/add_blocked_date"
)

const (
	msgMissingUserID   = "missing user ID"
	msgInvalidArtistID = "invalid artist ID"
	msgInvalidBody     = "invalid request body"
	msgAccessDenied    = "access denied"

	// Тексты показываются мастеру в приложении как есть
	msgInvalidTimeRange = "Start time cannot be greater than end time"
	msgNotEnoughArtists = "Not enough artists available"
	msgSlotNotAvailable = "This slot is not available"
)

type Handler struct {
	useCase AddBlockedDateUseCase
	logger  Logger
}

func NewHandler(useCase AddBlockedDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/artists/{artistId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	artistID, err := strconv.ParseInt(mux.Vars(r)["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /artists/{artistId}/blocked-dates - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	var req AddBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /artists/{artistId}/blocked-dates - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(artistID, userID)
	if err != nil {
		h.logger.Warn("POST /artists/{artistId}/blocked-dates - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, addBlockedDate.ErrInvalidTimeRange):
			h.logger.Warn("POST blocked-dates - Invalid time range: artist_id=%d", artistID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, addBlockedDate.ErrSlotNotAvailable):
			h.logger.Warn("POST blocked-dates - Slot not open: artist_id=%d", artistID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, addBlockedDate.ErrNotEnoughArtists):
			h.logger.Warn("POST blocked-dates - Not enough capacity: artist_id=%d, units=%d", artistID, req.Units)
			handlers.RespondError(w, http.StatusConflict, msgNotEnoughArtists)

		case errors.Is(err, addBlockedDate.ErrAccessDenied):
			h.logger.Warn("POST blocked-dates - Access denied: user_id=%d, artist_id=%d", userID, artistID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, addBlockedDate.ErrInvalidInput):
			h.logger.Warn("POST blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST blocked-dates - Failed: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST blocked-dates - Created: block_id=%d, artist_id=%d, units=%d",
		result.ID, artistID, result.Units)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
