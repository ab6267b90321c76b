package get_day_grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

type listRepo struct {
	items []*domain.Reservation
	err   error
	got   domain.ReservationFilter
}

func (r *listRepo) List(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.got = f
	return r.items, r.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type countingLogger struct{ warns int }

func (l *countingLogger) Info(string, ...interface{})  {}
func (l *countingLogger) Warn(string, ...interface{})  { l.warns++ }
func (l *countingLogger) Error(string, ...interface{}) {}

var seoul = time.FixedZone("KST", 9*3600)

func TestExecute(t *testing.T) {
	ownerID := uuid.New()
	owner := domain.Session{UserID: ownerID, Role: domain.RoleUser, Department: domain.Known(domain.DeptCAM)}
	other := domain.Session{UserID: uuid.New(), Role: domain.RoleUser, Department: domain.Known(domain.DeptCAM)}
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	a := &domain.Reservation{
		ID: uuid.New(), UserID: ownerID, Date: date, Space: domain.SpaceSunNest,
		StartTime: "09:00", EndTime: "10:00", Purpose: "예배 준비", Name: "홍길동",
		Department: domain.Known(domain.DeptClergy),
	}
	broken := &domain.Reservation{
		ID: uuid.New(), UserID: ownerID, Date: date, Space: domain.SpaceSunNest,
		StartTime: "10:00", EndTime: "09:00",
	}

	newUC := func(repo *listRepo, logger *countingLogger, now time.Time) *UseCase {
		uc := NewUseCase(repo, window.NewPolicy(3), seoul, logger)
		uc.timeProvider = fixedClock{now: now}
		return uc
	}

	t.Run("materializes slots with ownership flags", func(t *testing.T) {
		repo := &listRepo{items: []*domain.Reservation{a, broken}}
		logger := &countingLogger{}

		resp, err := newUC(repo, logger, time.Date(2025, 3, 1, 8, 0, 0, 0, seoul)).Execute(context.Background(), &Request{Session: owner, Date: date})
		require.NoError(t, err)

		assert.Equal(t, "2025-03-01", resp.Date)
		assert.True(t, resp.Bookable)
		assert.Len(t, resp.Spaces, 10)
		assert.Len(t, resp.TimeSlots, 30)
		require.Len(t, resp.Slots, 2)

		first, second := resp.Slots[0], resp.Slots[1]
		assert.Equal(t, "09:00", first.Time)
		assert.True(t, first.IsStart)
		assert.Equal(t, 2, first.Span)
		assert.Equal(t, "#FF6B6B", first.Color)
		assert.True(t, first.Editable)
		assert.Equal(t, "09:30", second.Time)
		assert.False(t, second.IsStart)
		assert.Zero(t, second.Span)

		assert.Equal(t, 1, logger.warns, "invalid row is skipped with a warning")
		require.NotNil(t, repo.got.Date)
		assert.True(t, types.IsSameDay(date, *repo.got.Date))
	})

	t.Run("other users cannot edit", func(t *testing.T) {
		repo := &listRepo{items: []*domain.Reservation{a}}

		resp, err := newUC(repo, &countingLogger{}, time.Date(2025, 3, 1, 8, 0, 0, 0, seoul)).Execute(context.Background(), &Request{Session: other, Date: date})
		require.NoError(t, err)
		for _, s := range resp.Slots {
			assert.False(t, s.Editable)
		}
	})

	t.Run("past date is not bookable", func(t *testing.T) {
		repo := &listRepo{}

		resp, err := newUC(repo, &countingLogger{}, time.Date(2025, 3, 2, 8, 0, 0, 0, seoul)).Execute(context.Background(), &Request{Session: owner, Date: date})
		require.NoError(t, err)
		assert.False(t, resp.Bookable)
		assert.NotEmpty(t, resp.Reason)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &listRepo{err: errors.New("timeout")}

		_, err := newUC(repo, &countingLogger{}, time.Now()).Execute(context.Background(), &Request{Session: owner, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := newUC(&listRepo{}, &countingLogger{}, time.Now()).Execute(context.Background(), &Request{Session: owner})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
