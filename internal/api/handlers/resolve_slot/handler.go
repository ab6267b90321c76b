package resolve_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
)

const (
	msgInvalidSlot = "장소와 시간을 확인해주세요"
	msgSlotEmpty   = "선택한 시간에 예약이 없습니다"
)

type Handler struct {
	service  ReservationService
	location *time.Location
	logger   Logger
}

func NewHandler(service ReservationService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/dates/{date}/slots/resolve?space=...&time=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	date, err := handlers.DateVar(r, "date", h.location)
	if err != nil {
		h.logger.Warn("GET /dates/{date}/slots/resolve - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}

	query := r.URL.Query()
	req := &models.ResolveSlotRequest{
		Date:  date,
		Space: query.Get("space"),
		Time:  query.Get("time"),
	}

	result, err := h.service.ResolveSlot(r.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /dates/{date}/slots/resolve - Invalid slot: space=%q, time=%q", req.Space, req.Time)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, reservations.ErrSlotEmpty):
			handlers.RespondNotFound(w, msgSlotEmpty)

		default:
			h.logger.Error("GET /dates/{date}/slots/resolve - Failed to resolve slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dates/{date}/slots/resolve - Resolved: reservation_id=%s, start=%s",
		result.Reservation.ID, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
