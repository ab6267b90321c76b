package update_user

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users/models"
)

type UserService interface {
	Update(ctx context.Context, session domain.Session, id uuid.UUID, req *models.UpdateUserRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
