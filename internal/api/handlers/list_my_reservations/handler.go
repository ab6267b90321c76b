package list_my_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	result, err := h.service.ListMine(r.Context(), session)
	if err != nil {
		if errors.Is(err, reservations.ErrAccessDenied) {
			handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
			return
		}
		h.logger.Error("GET /me/reservations - Failed to list reservations: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved successfully: user_id=%s, count=%d",
		session.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
