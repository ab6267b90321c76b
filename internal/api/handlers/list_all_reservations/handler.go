package list_all_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

const (
	msgInvalidUserID = "잘못된 사용자 ID입니다"
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

// Handle GET /api/v1/admin/reservations?date=YYYY-MM-DD&userId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	// Фильтры опциональны
	req := &models.ListAllRequest{}
	query := r.URL.Query()

	if raw := query.Get("date"); raw != "" {
		date, err := types.ParseDate(raw, h.location)
		if err != nil {
			h.logger.Warn("GET /admin/reservations - Invalid date: %q", raw)
			handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := query.Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /admin/reservations - Invalid user ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		req.UserID = &userID
	}

	result, err := h.service.ListAll(r.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("GET /admin/reservations - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, handlers.MsgAdminOnly)
		default:
			h.logger.Error("GET /admin/reservations - Failed to list reservations: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations - Reservations retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
