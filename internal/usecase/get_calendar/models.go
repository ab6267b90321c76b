package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Request модель запроса календаря на месяц
type Request struct {
	Session domain.Session // Вызывающий
	Month   time.Time      // Любая дата месяца; нулевое значение - текущий месяц
}

// Response календарь месяца для вызывающего
type Response struct {
	Month           string  `json:"month"` // "2025-02"
	PrevMonth       string  `json:"prevMonth"`
	NextMonth       string  `json:"nextMonth"`
	Days            []Day   `json:"days"`
	NextMonthUnlock *string `json:"nextMonthUnlock,omitempty"` // дата открытия следующего месяца; нет у администратора
	Message         string  `json:"message"`
}

// Day день месяца
type Day struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	Weekday  int    `json:"weekday"` // 0 = воскресенье
	Bookable bool   `json:"bookable"`
	IsToday  bool   `json:"isToday"`
	IsPast   bool   `json:"isPast"`
}

const msgAdminWindow = "관리자는 모든 날짜에 예약이 가능합니다"
