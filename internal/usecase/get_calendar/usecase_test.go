package get_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

var seoul = time.FixedZone("KST", 9*3600)

func newUC(now time.Time) *UseCase {
	uc := NewUseCase(window.NewPolicy(3), seoul, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute(t *testing.T) {
	today := time.Date(2025, 1, 10, 12, 0, 0, 0, seoul)
	member := domain.Session{Role: domain.RoleUser, Department: domain.Known(domain.DeptEtc)}
	admin := domain.Session{Role: domain.RoleAdmin}

	t.Run("current month", func(t *testing.T) {
		resp := newUC(today).Execute(&Request{Session: member})

		assert.Equal(t, "2025-01", resp.Month)
		assert.Equal(t, "2024-12", resp.PrevMonth)
		assert.Equal(t, "2025-02", resp.NextMonth)
		require.Len(t, resp.Days, 31)

		assert.True(t, resp.Days[8].IsPast)
		assert.False(t, resp.Days[8].Bookable)
		assert.True(t, resp.Days[9].IsToday)
		assert.True(t, resp.Days[9].Bookable)
		assert.Equal(t, int(time.Friday), resp.Days[9].Weekday)
		assert.True(t, resp.Days[30].Bookable)

		require.NotNil(t, resp.NextMonthUnlock)
		assert.Equal(t, "2025-01-15", *resp.NextMonthUnlock)
		assert.Equal(t, "매월 3번째 수요일에 다음 달 예약이 오픈됩니다", resp.Message)
	})

	t.Run("next month opens on the unlock date", func(t *testing.T) {
		req := &Request{Session: member, Month: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}

		before := newUC(today).Execute(req)
		require.Len(t, before.Days, 28)
		assert.False(t, before.Days[0].Bookable)

		after := newUC(time.Date(2025, 1, 15, 0, 30, 0, 0, seoul)).Execute(req)
		assert.True(t, after.Days[0].Bookable)
		assert.True(t, after.Days[27].Bookable)
	})

	t.Run("admin only loses past days", func(t *testing.T) {
		resp := newUC(today).Execute(&Request{Session: admin, Month: time.Date(2025, 3, 1, 0, 0, 0, 0, seoul)})

		for _, d := range resp.Days {
			assert.True(t, d.Bookable, d.Date)
		}
		assert.Nil(t, resp.NextMonthUnlock)
		assert.Equal(t, "관리자는 모든 날짜에 예약이 가능합니다", resp.Message)

		current := newUC(today).Execute(&Request{Session: admin})
		assert.False(t, current.Days[0].Bookable)
	})
}
