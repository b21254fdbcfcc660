package delete_window

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
	msgInvalidWindowID = "invalid window ID"
	msgWindowNotFound  = "window not found"
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

// Handle DELETE /api/v1/artists/{artistId}/windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	windowID, err := strconv.ParseInt(mux.Vars(r)["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /artists/{artistId}/windows/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.scheduleService.DeleteWindow(r.Context(), windowID, userID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrWindowNotFound):
			h.logger.Warn("DELETE windows - Not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE windows - Access denied: user_id=%d, window_id=%d", userID, windowID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE windows - Failed: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE windows - Deleted: window_id=%d, user_id=%d", windowID, userID)
	w.WriteHeader(http.StatusNoContent)
}
