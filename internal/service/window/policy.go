package window

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// Policy правила открытия дат для бронирования.
// Все даты сравниваются без времени; вызывающий отвечает за одинаковую локацию date и today.
type Policy struct {
	horizonMonths int
}

// NewPolicy создает политику. horizonMonths <= 0 заменяется значением по умолчанию.
func NewPolicy(horizonMonths int) *Policy {
	if horizonMonths <= 0 {
		horizonMonths = domain.DefaultHorizonMonths
	}
	return &Policy{horizonMonths: horizonMonths}
}

// HorizonMonths горизонт формы бронирования в месяцах
func (p *Policy) HorizonMonths() int {
	return p.horizonMonths
}

// NthWeekdayOfMonth n-е вхождение дня недели в месяце; ok=false, если месяц закончился раньше
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, nth int, loc *time.Location) (time.Time, bool) {
	count := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, loc); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() != weekday {
			continue
		}
		count++
		if count == nth {
			return d, true
		}
	}
	return time.Time{}, false
}

// UnlockDate дата в предыдущем месяце, с которой месяц target открывается для отдела
func (p *Policy) UnlockDate(dept domain.Department, target time.Time) (time.Time, bool) {
	prev := types.FirstOfMonth(target).AddDate(0, -1, 0)
	rule := dept.UnlockRule()
	return NthWeekdayOfMonth(prev.Year(), prev.Month(), rule.Weekday, rule.Nth, target.Location())
}

// NextMonthUnlockDate дата открытия месяца, следующего за today
func (p *Policy) NextMonthUnlockDate(dept domain.Department, today time.Time) (time.Time, bool) {
	return p.UnlockDate(dept, types.FirstOfMonth(today).AddDate(0, 1, 0))
}

// IsBookableForDepartment проверяет прошедшие даты и дату открытия месяца для отдела
func (p *Policy) IsBookableForDepartment(date time.Time, dept domain.Department, today time.Time) bool {
	return p.checkDepartment(date, dept, today) == nil
}

// IsPast дата раньше сегодняшней
func (p *Policy) IsPast(date, today time.Time) bool {
	return types.DateOnly(date).Before(types.DateOnly(today))
}

// HorizonEnd последняя дата (включительно), доступная в форме бронирования
func (p *Policy) HorizonEnd(today time.Time) time.Time {
	return types.DateOnly(today).AddDate(0, p.horizonMonths, 0)
}

// WithinHorizon дата не дальше горизонта от today; роль не учитывается
func (p *Policy) WithinHorizon(date, today time.Time) bool {
	return !types.DateOnly(date).After(p.HorizonEnd(today))
}

// CheckEntry полная проверка даты для формы бронирования.
// Администраторы освобождены только от проверки открытия месяца.
func (p *Policy) CheckEntry(date time.Time, session domain.Session, today time.Time) error {
	if p.IsPast(date, today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}
	if !p.WithinHorizon(date, today) {
		return fmt.Errorf("%w: %s after %s", ErrBeyondHorizon,
			date.Format(domain.DateFormat), p.HorizonEnd(today).Format(domain.DateFormat))
	}
	if session.IsAdmin() {
		return nil
	}
	return p.checkDepartment(date, session.Department, today)
}

// IsBookable то же, что CheckEntry, в виде флага для календаря
func (p *Policy) IsBookable(date time.Time, session domain.Session, today time.Time) bool {
	return p.CheckEntry(date, session, today) == nil
}

func (p *Policy) checkDepartment(date time.Time, dept domain.Department, today time.Time) error {
	target := types.DateOnly(date)
	now := types.DateOnly(today)

	if target.Before(now) {
		return fmt.Errorf("%w: %s", ErrDateInPast, target.Format(domain.DateFormat))
	}
	if types.IsSameMonth(target, now) {
		return nil
	}

	unlock, ok := p.UnlockDate(dept, target)
	if !ok {
		// n-го вхождения нет: дата открыта
		return nil
	}
	if now.Before(unlock) {
		return fmt.Errorf("%w: %s opens on %s", ErrNotYetUnlocked,
			target.Format(domain.MonthFormat), unlock.Format(domain.DateFormat))
	}
	return nil
}
