package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
)

// Request модель запроса на создание бронирования
type Request struct {
	Session domain.Session // Вызывающий
	Date    time.Time      // Дата бронирования (без времени)
	Space   string         // Пространство
	Form    form.Fields    // Поля формы; пустой EndTime = начало + 30 минут
}

const (
	msgSpace = "장소를 선택해주세요"
	msgDate  = "날짜를 선택해주세요"
)
