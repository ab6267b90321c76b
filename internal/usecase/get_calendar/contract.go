package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// WindowPolicy правила открытия месяцев
type WindowPolicy interface {
	IsPast(date, today time.Time) bool
	IsBookableForDepartment(date time.Time, dept domain.Department, today time.Time) bool
	NextMonthUnlockDate(dept domain.Department, today time.Time) (time.Time, bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
