package delete_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users"
)

const (
	msgInvalidUserID     = "잘못된 사용자 ID입니다"
	msgUserNotFound      = "사용자를 찾을 수 없습니다"
	msgCannotDeleteAdmin = "관리자 계정은 삭제할 수 없습니다."
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

// Handle DELETE /api/v1/admin/users/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
		return
	}

	id, err := handlers.UUIDVar(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), session, id); err != nil {
		switch {
		case errors.Is(err, users.ErrForbidden):
			h.logger.Warn("DELETE /admin/users/{id} - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, handlers.MsgAdminOnly)

		case errors.Is(err, users.ErrCannotDeleteAdmin):
			h.logger.Warn("DELETE /admin/users/{id} - Admin target: user_id=%s", id)
			handlers.RespondForbidden(w, msgCannotDeleteAdmin)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("DELETE /admin/users/{id} - User not found: user_id=%s", id)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("DELETE /admin/users/{id} - Failed to delete user: user_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
