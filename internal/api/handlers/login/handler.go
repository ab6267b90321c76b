package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users/models"
)

const (
	msgUnknownLoginID = "등록되지 않은 사용자 ID입니다"
	msgWrongPassword  = "비밀번호가 일치하지 않습니다"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		var expired *users.AccountExpiredError
		fields, isValidation := domain.FieldErrorsOf(err)
		switch {
		case isValidation:
			handlers.RespondValidation(w, fields)

		case errors.Is(err, users.ErrUnknownLoginID):
			h.logger.Warn("POST /auth/login - Unknown login id: login_id=%s", req.LoginID)
			handlers.RespondUnauthorized(w, msgUnknownLoginID)

		case errors.Is(err, users.ErrWrongPassword):
			h.logger.Warn("POST /auth/login - Wrong password: login_id=%s", req.LoginID)
			handlers.RespondUnauthorized(w, msgWrongPassword)

		case errors.As(err, &expired):
			h.logger.Warn("POST /auth/login - Account expired: login_id=%s, expires_at=%s",
				req.LoginID, expired.ExpiresAt.Format(domain.DateFormat))
			handlers.RespondForbidden(w, expired.Error())

		default:
			h.logger.Error("POST /auth/login - Failed to log in: login_id=%s, error=%v", req.LoginID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Logged in: user_id=%s", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
