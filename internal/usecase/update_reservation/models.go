package update_reservation

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
)

// Request модель запроса на изменение бронирования.
// Дата и пространство не меняются.
type Request struct {
	Session domain.Session // Вызывающий
	ID      uuid.UUID      // ID бронирования
	Form    form.Fields    // Новые значения полей
}
