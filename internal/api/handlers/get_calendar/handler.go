package get_calendar

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_calendar"
)

const (
	msgInvalidMonth = "월 형식이 올바르지 않습니다 (YYYY-MM)"
)

type Handler struct {
	useCase  GetCalendarUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetCalendarUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	// Без параметра - текущий месяц
	var month time.Time
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.ParseInLocation(domain.MonthFormat, raw, h.location)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid month: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	result := h.useCase.Execute(&getCalendar.Request{Session: session, Month: month})

	h.logger.Info("GET /calendar - Calendar built: month=%s, user_id=%s", result.Month, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
