package get_day_grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	getDayGrid "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_day_grid"
)

type Handler struct {
	useCase  GetDayGridUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetDayGridUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/dates/{date}/grid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	date, err := handlers.DateVar(r, "date", h.location)
	if err != nil {
		h.logger.Warn("GET /dates/{date}/grid - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDayGrid.Request{Session: session, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getDayGrid.ErrInvalidDate):
			handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		default:
			h.logger.Error("GET /dates/{date}/grid - Failed to build grid: date=%s, error=%v", date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dates/{date}/grid - Grid built: date=%s, cells=%d", result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
