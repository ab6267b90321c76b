package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_reservation"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date  string `json:"date"`  // "2025-03-01"
	Space string `json:"space"` // "푸른초장"
	form.Fields
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустая дата уходит в use case как нулевая и возвращается ошибкой поля.
func (r *CreateReservationRequest) ToUseCaseRequest(session domain.Session, loc *time.Location) (*createReservation.Request, error) {
	var date time.Time
	if r.Date != "" {
		parsed, err := types.ParseDate(r.Date, loc)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &createReservation.Request{
		Session: session,
		Date:    date,
		Space:   r.Space,
		Form:    r.Fields,
	}, nil
}
