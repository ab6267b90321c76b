package get_calendar

import (
	getCalendar "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_calendar"
)

type GetCalendarUseCase interface {
	Execute(req *getCalendar.Request) *getCalendar.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
