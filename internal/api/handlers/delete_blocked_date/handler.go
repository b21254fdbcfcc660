package delete_blocked_date

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
	msgMissingUserID  = "missing user ID"
	msgInvalidBlockID = "invalid blocked date ID"
	msgBlockNotFound  = "blocked date not found"
	msgAccessDenied   = "access denied"
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

// Handle DELETE /api/v1/artists/{artistId}/blocked-dates/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	blockID, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /artists/{artistId}/blocked-dates/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.scheduleService.DeleteBlockedDate(r.Context(), blockID, userID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBlockNotFound):
			h.logger.Warn("DELETE blocked-dates - Not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE blocked-dates - Access denied: user_id=%d, block_id=%d", userID, blockID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE blocked-dates - Failed: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE blocked-dates - Deleted: block_id=%d, user_id=%d", blockID, userID)
	w.WriteHeader(http.StatusNoContent)
}
