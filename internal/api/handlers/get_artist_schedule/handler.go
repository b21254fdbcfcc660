package get_artist_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamslot/booking-service/internal/api/handlers"
	scheduleService "github.com/glamslot/booking-service/internal/service/schedule"
)

const msgInvalidArtistID = "invalid artist ID"

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

// Handle GET /api/v1/artists/{artistId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	artistID, err := strconv.ParseInt(mux.Vars(r)["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{artistId}/schedule - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	result, err := h.scheduleService.GetSchedule(r.Context(), artistID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			h.logger.Warn("GET /artists/{artistId}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidArtistID)
			return
		}
		h.logger.Error("GET /artists/{artistId}/schedule - Failed: artist_id=%d, error=%v", artistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /artists/{artistId}/schedule - Retrieved: artist_id=%d, windows=%d, blocks=%d",
		artistID, len(result.Windows), len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
