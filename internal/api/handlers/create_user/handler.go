package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
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

// Handle POST /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.service.Create(r.Context(), session, &req)
	if err != nil {
		fields, isValidation := domain.FieldErrorsOf(err)
		switch {
		case isValidation:
			handlers.RespondValidation(w, fields)

		case errors.Is(err, users.ErrForbidden):
			h.logger.Warn("POST /admin/users - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, handlers.MsgAdminOnly)

		case errors.Is(err, users.ErrDuplicateLoginID):
			h.logger.Warn("POST /admin/users - Login id taken: login_id=%s", req.LoginID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{
				Message: msgDuplicateLoginID,
				Fields:  map[string]string{"loginId": msgDuplicateLoginID},
			})

		default:
			h.logger.Error("POST /admin/users - Failed to create user: login_id=%s, error=%v", req.LoginID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/users - User created successfully: user_id=%s, role=%s", result.ID, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
