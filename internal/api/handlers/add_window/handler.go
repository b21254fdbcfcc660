package add_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	"github.com/glamslot/booking-service/internal/api/middleware"
	scheduleService "github.com/glamslot/booking-service/internal/service/schedule"
)

const (
	msgMissingUserID   = "missing user ID"
	msgInvalidArtistID = "invalid artist ID"
	msgInvalidBody     = "invalid request body"
	msgWindowConflict  = "window overlaps an existing window"
	msgAccessDenied    = "access denied"
)

type Handler struct {
	scheduleService ScheduleService
	logger          Logger
}

func NewHandler(scheduleService ScheduleService, logger Logger) *Handler {
	return &Handler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Handle POST /api/v1/artists/{artistId}/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	artistID, err := strconv.ParseInt(mux.Vars(r)["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /artists/{artistId}/windows - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	var req AddWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /artists/{artistId}/windows - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.scheduleService.AddWindow(r.Context(), req.ToServiceRequest(artistID, userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrWindowConflict):
			h.logger.Warn("POST /artists/{artistId}/windows - Conflict: artist_id=%d", artistID)
			handlers.RespondError(w, http.StatusConflict, msgWindowConflict)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("POST /artists/{artistId}/windows - Access denied: user_id=%d, artist_id=%d", userID, artistID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /artists/{artistId}/windows - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /artists/{artistId}/windows - Failed: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /artists/{artistId}/windows - Created: window_id=%d, artist_id=%d", result.ID, artistID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
