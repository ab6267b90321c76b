package slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// SlotKey ячейка сетки дня
type SlotKey struct {
	Space domain.Space
	Time  types.TimeString
}

// SlotEntry занятая ячейка. IsStart отмечает первую ячейку блока.
type SlotEntry struct {
	Reservation *domain.Reservation
	IsStart     bool
}

// Grid занятые ячейки дня; используется только для отображения
type Grid map[SlotKey]SlotEntry

// ReservationsToSlots разворачивает бронирования в ячейки по 30 минут.
// Бронирования с временем вне сетки пропускаются с предупреждением.
func ReservationsToSlots(reservations []*domain.Reservation, logger Logger) Grid {
	grid := make(Grid)

	for _, r := range reservations {
		startIdx, endIdx, ok := slotBounds(r)
		if !ok {
			logger.Warn("ReservationsToSlots: skipping reservation id=%s space=%s with invalid time range %q ~ %q",
				r.ID, r.Space, r.StartTime, r.EndTime)
			continue
		}

		for i := startIdx; i < endIdx; i++ {
			t, _ := domain.SlotAt(i)
			key := SlotKey{Space: r.Space, Time: t}
			if existing, taken := grid[key]; taken {
				logger.Warn("ReservationsToSlots: slot %s %s of reservation id=%s already taken by id=%s",
					key.Space, key.Time, r.ID, existing.Reservation.ID)
				continue
			}
			grid[key] = SlotEntry{Reservation: r, IsStart: i == startIdx}
		}
	}

	return grid
}

func slotBounds(r *domain.Reservation) (startIdx, endIdx int, ok bool) {
	start, err := types.NewTimeStringFromString(string(r.StartTime))
	if err != nil {
		return 0, 0, false
	}
	end, err := types.NewTimeStringFromString(string(r.EndTime))
	if err != nil {
		return 0, 0, false
	}

	startIdx = domain.SlotIndex(start)
	endIdx = domain.EndIndex(end)
	if startIdx < 0 || endIdx < 0 || startIdx >= endIdx {
		return 0, 0, false
	}
	return startIdx, endIdx, true
}

// FindReservationStart по нажатой ячейке находит первую ячейку ее бронирования.
// Идет назад, пока ячейки принадлежат тому же бронированию; при разрыве возвращает нажатую ячейку.
// found=false, если нажатая ячейка свободна.
func FindReservationStart(grid Grid, space domain.Space, t types.TimeString) (key SlotKey, entry SlotEntry, found bool) {
	clickedKey := SlotKey{Space: space, Time: t}
	clicked, ok := grid[clickedKey]
	if !ok {
		return clickedKey, SlotEntry{}, false
	}
	if clicked.IsStart {
		return clickedKey, clicked, true
	}

	for i := domain.SlotIndex(t) - 1; i >= 0; i-- {
		prevTime, _ := domain.SlotAt(i)
		prevKey := SlotKey{Space: space, Time: prevTime}

		prev, ok := grid[prevKey]
		if !ok || !sameReservation(prev.Reservation, clicked.Reservation) {
			break
		}
		if prev.IsStart {
			return prevKey, prev, true
		}
	}

	return clickedKey, clicked, true
}

// sameReservation сравнивает по id; без id (старые данные) по (userId, purpose, startTime)
func sameReservation(a, b *domain.Reservation) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID != uuid.Nil && b.ID != uuid.Nil {
		return a.ID == b.ID
	}
	return a.UserID == b.UserID && a.Purpose == b.Purpose && a.StartTime == b.StartTime
}
