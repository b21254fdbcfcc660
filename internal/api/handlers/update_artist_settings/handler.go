package update_artist_settings

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

// Handle PUT /api/v1/artists/{artistId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	artistID, err := strconv.ParseInt(mux.Vars(r)["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /artists/{artistId}/settings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /artists/{artistId}/settings - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.scheduleService.UpdateSettings(r.Context(), req.ToServiceRequest(artistID, userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /artists/{artistId}/settings - Access denied: user_id=%d, artist_id=%d", userID, artistID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /artists/{artistId}/settings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /artists/{artistId}/settings - Failed: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /artists/{artistId}/settings - Updated: artist_id=%d, units=%d",
		artistID, result.UnitCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
