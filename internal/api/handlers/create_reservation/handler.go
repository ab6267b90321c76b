package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_reservation"
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(session, h.location)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date: %q", req.Date)
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondReservationError(w, err) {
			h.logger.Warn("POST /reservations - Rejected: user_id=%s, date=%s, space=%s, reason=%v",
				session.UserID, req.Date, req.Space, err)
			return
		}

		switch {
		case errors.Is(err, createReservation.ErrUnauthorized):
			handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, date=%s, space=%s, error=%v",
				session.UserID, req.Date, req.Space, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, user_id=%s",
		result.ID, session.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
