package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
	updateReservation "github.com/m04kA/SMC-SpaceBooking/internal/usecase/update_reservation"
)

const (
	msgInvalidID           = "잘못된 예약 ID입니다"
	msgReservationNotFound = "예약을 찾을 수 없습니다"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	id, err := handlers.UUIDVar(r, "id")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var fields form.Fields
	if err := handlers.DecodeJSON(r, &fields); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateReservation.Request{
		Session: session,
		ID:      id,
		Form:    fields,
	})
	if err != nil {
		if handlers.RespondReservationError(w, err) {
			h.logger.Warn("PUT /reservations/{id} - Rejected: reservation_id=%s, reason=%v", id, err)
			return
		}

		switch {
		case errors.Is(err, updateReservation.ErrUnauthorized):
			handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)

		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%s", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/{id} - Access denied: reservation_id=%s, user_id=%s", id, session.UserID)
			handlers.RespondForbidden(w, handlers.MsgReservationAccess)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
