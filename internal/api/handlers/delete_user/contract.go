package delete_user

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

type UserService interface {
	Delete(ctx context.Context, session domain.Session, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
