package update_user

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
	msgInvalidUserID = "잘못된 사용자 ID입니다"
	msgUserNotFound  = "사용자를 찾을 수 없습니다"
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

// Handle PUT /api/v1/admin/users/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	id, err := handlers.UUIDVar(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.service.Update(r.Context(), session, id, &req)
	if err != nil {
		fields, isValidation := domain.FieldErrorsOf(err)
		switch {
		case isValidation:
			handlers.RespondValidation(w, fields)

		case errors.Is(err, users.ErrForbidden):
			h.logger.Warn("PUT /admin/users/{id} - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, handlers.MsgAdminOnly)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /admin/users/{id} - User not found: user_id=%s", id)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PUT /admin/users/{id} - Failed to update user: user_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/users/{id} - User updated successfully: user_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
