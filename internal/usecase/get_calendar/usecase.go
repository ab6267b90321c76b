package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// UseCase use case для календаря месяца
type UseCase struct {
	policy       WindowPolicy
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(policy WindowPolicy, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		policy:       policy,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит дни месяца с флагами для отдела вызывающего.
// Администратору закрыты только прошедшие даты.
func (uc *UseCase) Execute(req *Request) *Response {
	now := uc.timeProvider.Now().In(uc.location)

	month := types.FirstOfMonth(now)
	if !req.Month.IsZero() {
		month = types.FirstOfMonth(types.DateIn(req.Month, uc.location))
	}

	uc.logger.Info("GetCalendar: month=%s, user=%s", month.Format(domain.MonthFormat), req.Session.UserID)

	resp := &Response{
		Month:     month.Format(domain.MonthFormat),
		PrevMonth: month.AddDate(0, -1, 0).Format(domain.MonthFormat),
		NextMonth: month.AddDate(0, 1, 0).Format(domain.MonthFormat),
		Days:      make([]Day, 0, 31),
	}

	for d := month; d.Month() == month.Month(); d = d.AddDate(0, 0, 1) {
		past := uc.policy.IsPast(d, now)

		bookable := !past
		if !req.Session.IsAdmin() {
			bookable = uc.policy.IsBookableForDepartment(d, req.Session.Department, now)
		}

		resp.Days = append(resp.Days, Day{
			Date:     d.Format(domain.DateFormat),
			Day:      d.Day(),
			Weekday:  int(d.Weekday()),
			Bookable: bookable,
			IsToday:  types.IsSameDay(d, now),
			IsPast:   past,
		})
	}

	if req.Session.IsAdmin() {
		resp.Message = msgAdminWindow
		return resp
	}

	resp.Message = req.Session.Department.UnlockRule().Description()
	if unlock, ok := uc.policy.NextMonthUnlockDate(req.Session.Department, now); ok {
		s := unlock.Format(domain.DateFormat)
		resp.NextMonthUnlock = &s
	}

	return resp
}
