package signup

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users/models"
)

const (
	msgDuplicateLoginID = "이미 사용 중인 사용자 ID입니다"
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

// Handle POST /api/v1/auth/signup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/signup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		fields, isValidation := domain.FieldErrorsOf(err)
		switch {
		case isValidation:
			h.logger.Warn("POST /auth/signup - Validation failed: login_id=%s, fields=%v", req.LoginID, fields)
			handlers.RespondValidation(w, fields)

		case errors.Is(err, users.ErrDuplicateLoginID):
			h.logger.Warn("POST /auth/signup - Login id taken: login_id=%s", req.LoginID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{
				Message: msgDuplicateLoginID,
				Fields:  map[string]string{"loginId": msgDuplicateLoginID},
			})

		default:
			h.logger.Error("POST /auth/signup - Failed to sign up: login_id=%s, error=%v", req.LoginID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/signup - User registered: user_id=%s, login_id=%s", result.ID, result.LoginID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
