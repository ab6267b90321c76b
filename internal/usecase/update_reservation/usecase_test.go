package update_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/conflict"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
	"github.com/m04kA/SMC-SpaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

type memStore struct {
	items    map[uuid.UUID]*domain.Reservation
	ops      []string
	getErr   error
	writeErr error
}

func newStore(items ...*domain.Reservation) *memStore {
	s := &memStore{items: map[uuid.UUID]*domain.Reservation{}}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.ops = append(s.ops, "get")
	if s.getErr != nil {
		return nil, s.getErr
	}
	r, ok := s.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.ops = append(s.ops, "create")
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	cp := *r
	s.items[r.ID] = &cp
	return r, nil
}

func (s *memStore) Update(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.ops = append(s.ops, "update")
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	if _, ok := s.items[r.ID]; !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	s.items[r.ID] = &cp
	return r, nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.ops = append(s.ops, "delete")
	delete(s.items, id)
	return nil
}

func (s *memStore) List(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range s.items {
		if f.Date != nil && !types.IsSameDay(*f.Date, r.Date) {
			continue
		}
		if f.Space != nil && *f.Space != r.Space {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type outcomes []string

func (o *outcomes) RecordReservation(outcome string) { *o = append(*o, outcome) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	seoul    = time.FixedZone("KST", 9*3600)
	today    = time.Date(2025, 3, 1, 9, 0, 0, 0, seoul)
	day      = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	ownerID  = uuid.New()
	owner    = domain.Session{UserID: ownerID, Role: domain.RoleUser, Department: domain.Known(domain.DeptCAM)}
	stranger = domain.Session{UserID: uuid.New(), Role: domain.RoleUser, Department: domain.Known(domain.DeptCAM)}
	admin    = domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
	created  = time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)
)

func existing(start, end string) *domain.Reservation {
	return &domain.Reservation{
		ID:         uuid.New(),
		UserID:     ownerID,
		Date:       day,
		Space:      domain.SpaceStillWaters,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Purpose:    "기도회",
		Name:       "홍길동",
		Department: domain.Known(domain.DeptCAM),
		CreatedAt:  created,
	}
}

func newUseCase(store *memStore, rec *outcomes) *UseCase {
	uc := NewUseCase(store, conflict.NewDetector(store, nopLogger{}), window.NewPolicy(3), passTx{},
		validation.New(), rec, seoul, nopLogger{})
	uc.timeProvider = fixedClock{now: today}
	return uc
}

func fields(start, end, purpose string) form.Fields {
	return form.Fields{Name: "홍길동", Purpose: purpose, StartTime: start, EndTime: end}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("same range updates in place", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)
		rec := &outcomes{}

		resp, err := newUseCase(store, rec).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:00", "11:00", "새 목적")})
		require.NoError(t, err)
		assert.Equal(t, "새 목적", resp.Purpose)
		assert.Contains(t, store.ops, "update")
		assert.NotContains(t, store.ops, "delete")
		assert.Equal(t, []string{metrics.OutcomeUpdated}, []string(*rec))
	})

	t.Run("changed range is deleted and reinserted with the same id", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)

		resp, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:30", "12:00", "기도회")})
		require.NoError(t, err)
		assert.Equal(t, r.ID, resp.ID)
		assert.Equal(t, "10:30", resp.StartTime)
		assert.Equal(t, created, resp.CreatedAt)

		ops := store.ops[len(store.ops)-2:]
		assert.Equal(t, []string{"delete", "create"}, ops)
		assert.Len(t, store.items, 1)
	})

	t.Run("own range does not conflict with itself", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:00", "10:30", "기도회")})
		assert.NoError(t, err)
	})

	t.Run("overlap with another reservation", func(t *testing.T) {
		r := existing("10:00", "11:00")
		neighbour := existing("11:00", "12:00")
		neighbour.UserID = stranger.UserID
		store := newStore(r, neighbour)
		rec := &outcomes{}

		_, err := newUseCase(store, rec).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:00", "11:30", "기도회")})
		require.ErrorIs(t, err, domain.ErrConflict)

		var ce *domain.ConflictError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "11:00 ~ 12:00", ce.Ranges())
		assert.Equal(t, types.TimeString("11:00"), store.items[r.ID].EndTime)
		assert.Equal(t, []string{metrics.OutcomeConflict}, []string(*rec))
	})

	t.Run("stranger is denied before validation", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: stranger, ID: r.ID, Form: form.Fields{}})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, []string{"get"}, store.ops)
	})

	t.Run("admin may edit any reservation", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: admin, ID: r.ID, Form: fields("10:00", "11:00", "관리자 수정")})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newUseCase(newStore(), &outcomes{}).Execute(ctx, &Request{Session: owner, ID: uuid.New(), Form: fields("10:00", "11:00", "x")})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("past reservation cannot be edited", func(t *testing.T) {
		r := existing("10:00", "11:00")
		r.Date = time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
		store := newStore(r)

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:00", "11:00", "x")})
		assert.ErrorIs(t, err, window.ErrDateInPast)
	})

	t.Run("validation error", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("11:00", "10:00", "x")})
		fields, ok := domain.FieldErrorsOf(err)
		require.True(t, ok)
		assert.Equal(t, "종료 시간은 시작 시간보다 이후여야 합니다", fields["endTime"])
	})

	t.Run("database overlap becomes conflict", func(t *testing.T) {
		r := existing("10:00", "11:00")
		store := newStore(r)
		store.writeErr = reservationRepo.ErrOverlap

		_, err := newUseCase(store, &outcomes{}).Execute(ctx, &Request{Session: owner, ID: r.ID, Form: fields("10:00", "11:00", "x")})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := newUseCase(newStore(), &outcomes{}).Execute(ctx, &Request{ID: uuid.New()})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
