package window

import "errors"

var (
	// ErrDateInPast возвращается для дат раньше сегодняшней
	ErrDateInPast = errors.New("window: date is in the past")

	// ErrBeyondHorizon возвращается для дат дальше горизонта бронирования
	ErrBeyondHorizon = errors.New("window: date is beyond the booking horizon")

	// ErrNotYetUnlocked возвращается, когда месяц еще не открыт для отдела
	ErrNotYetUnlocked = errors.New("window: booking for this month is not open yet")
)
