package get_day_grid

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/slots"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// UseCase use case для сетки слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	policy          WindowPolicy
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policy WindowPolicy,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute разворачивает бронирования дня в ячейки по 30 минут.
// Чтение не транзакционно: параллельные записи видны при следующем запросе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	date := types.DateIn(req.Date, uc.location)
	uc.logger.Info("GetDayGrid: date=%s, user=%s", date.Format(domain.DateFormat), req.Session.UserID)

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetDayGrid: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	grid := slots.ReservationsToSlots(reservations, uc.logger)

	resp := &Response{
		Date:      date.Format(domain.DateFormat),
		Bookable:  true,
		Spaces:    spaceNames(),
		TimeSlots: timeSlotNames(),
		Slots:     make([]Slot, 0, len(grid)),
	}

	now := uc.timeProvider.Now().In(uc.location)
	if err := uc.policy.CheckEntry(date, req.Session, now); err != nil {
		resp.Bookable = false
		resp.Reason = err.Error()
	}

	// Порядок вывода: пространство, затем время
	for _, space := range domain.Spaces() {
		for _, t := range domain.StartSlots() {
			entry, ok := grid[slots.SlotKey{Space: space, Time: t}]
			if !ok {
				continue
			}
			resp.Slots = append(resp.Slots, toSlot(space, t, entry, req.Session))
		}
	}

	uc.logger.Info("GetDayGrid: %d reservations, %d occupied slots", len(reservations), len(resp.Slots))
	return resp, nil
}

func toSlot(space domain.Space, t types.TimeString, entry slots.SlotEntry, session domain.Session) Slot {
	r := entry.Reservation
	s := Slot{
		Space:         string(space),
		Time:          t.String(),
		ReservationID: r.ID,
		IsStart:       entry.IsStart,
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Name:          r.Name,
		Department:    r.Department.String(),
		Color:         r.Department.Color(),
		Purpose:       r.Purpose,
		IsProvisional: r.IsProvisional,
		Editable:      session.CanModify(r.UserID),
	}
	if entry.IsStart {
		if covered, err := domain.SlotsBetween(r.StartTime, r.EndTime); err == nil {
			s.Span = len(covered)
		}
	}
	return s
}

func spaceNames() []string {
	spaces := domain.Spaces()
	names := make([]string, 0, len(spaces))
	for _, s := range spaces {
		names = append(names, string(s))
	}
	return names
}

func timeSlotNames() []string {
	starts := domain.StartSlots()
	names := make([]string, 0, len(starts))
	for _, t := range starts {
		names = append(names, t.String())
	}
	return names
}
