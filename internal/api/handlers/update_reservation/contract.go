package update_reservation

import (
	"context"

	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-SpaceBooking/internal/usecase/update_reservation"
)

type UpdateReservationUseCase interface {
	Execute(ctx context.Context, req *updateReservation.Request) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
