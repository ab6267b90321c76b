package get_day_grid

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Request модель запроса сетки дня
type Request struct {
	Session domain.Session // Вызывающий
	Date    time.Time      // Дата (без времени)
}

// Response сетка дня: пространства по столбцам, слоты по строкам
type Response struct {
	Date      string   `json:"date"`
	Bookable  bool     `json:"bookable"`         // можно ли бронировать эту дату
	Reason    string   `json:"reason,omitempty"` // причина, если нельзя
	Spaces    []string `json:"spaces"`
	TimeSlots []string `json:"timeSlots"`
	Slots     []Slot   `json:"slots"` // только занятые ячейки
}

// Slot занятая ячейка
type Slot struct {
	Space         string    `json:"space"`
	Time          string    `json:"time"`
	ReservationID uuid.UUID `json:"reservationId"`
	IsStart       bool      `json:"isStart"`
	Span          int       `json:"span,omitempty"` // число ячеек блока, только у первой
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	Color         string    `json:"color"`
	Purpose       string    `json:"purpose"`
	IsProvisional bool      `json:"isProvisional"`
	Editable      bool      `json:"editable"` // владелец или администратор
}
