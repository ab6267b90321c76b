package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/ptr"
)

var _ DBExecutor = (*sql.DB)(nil)
var _ DBExecutor = (*dbmetrics.DB)(nil)

func TestBuildListQuery(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	space := domain.SpaceGreenPasture
	userID := uuid.New()

	t.Run("date and space outside tx", func(t *testing.T) {
		query, args, err := buildListQuery(domain.ReservationFilter{Date: &date, Space: &space}, false).ToSql()

		require.NoError(t, err)
		assert.Contains(t, query, "FROM reservations WHERE date = $1 AND space = $2")
		assert.Contains(t, query, "ORDER BY date ASC, start_time ASC")
		assert.NotContains(t, query, "FOR UPDATE")
		assert.Equal(t, []interface{}{"2025-03-01", string(space)}, args)
	})

	t.Run("date and space inside tx locks rows", func(t *testing.T) {
		query, _, err := buildListQuery(domain.ReservationFilter{Date: &date, Space: &space}, true).ToSql()

		require.NoError(t, err)
		assert.Contains(t, query, "FOR UPDATE")
	})

	t.Run("user only inside tx does not lock", func(t *testing.T) {
		query, args, err := buildListQuery(domain.ReservationFilter{UserID: &userID}, true).ToSql()

		require.NoError(t, err)
		assert.Contains(t, query, "WHERE user_id = $1")
		assert.NotContains(t, query, "FOR UPDATE")
		assert.Equal(t, []interface{}{userID}, args)
	})

	t.Run("period", func(t *testing.T) {
		to := date.AddDate(0, 1, -1)
		query, args, err := buildListQuery(domain.ReservationFilter{From: &date, To: &to}, false).ToSql()

		require.NoError(t, err)
		assert.Contains(t, query, "date >= $1 AND date <= $2")
		assert.Equal(t, []interface{}{"2025-03-01", "2025-03-31"}, args)
	})

	t.Run("empty filter selects all", func(t *testing.T) {
		query, args, err := buildListQuery(domain.ReservationFilter{}, false).ToSql()

		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})
}

func TestMapWriteError(t *testing.T) {
	assert.ErrorIs(t, mapWriteError("Create", &pq.Error{Code: pqExclusionViolation}), ErrOverlap)
	assert.ErrorIs(t, mapWriteError("Create", &pq.Error{Code: pqCheckViolation}), ErrInvalidTimeRange)
	assert.ErrorIs(t, mapWriteError("Create", &pq.Error{Code: pqForeignKeyViolation}), ErrUserNotFound)

	serialization := &pq.Error{Code: "40001"}
	err := mapWriteError("Create", serialization)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

// Интеграционный тест: требуется TEST_DATABASE_URL с примененными миграциями
func TestRepositoryPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, login_id, password_hash, name, department, role) VALUES ($1, $2, 'x', 'tester', 'CAM', 'user')`,
		userID, "repo-"+userID.String()[:8])
	require.NoError(t, err)
	defer db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	date := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, &domain.Reservation{
		UserID:     userID,
		Date:       date,
		Space:      domain.SpaceVisionFactory3,
		StartTime:  "12:00",
		EndTime:    "13:00",
		Purpose:    "회의",
		Name:       "tester",
		Department: domain.Known(domain.DeptCAM),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Reservation{
		UserID:     userID,
		Date:       date,
		Space:      domain.SpaceVisionFactory3,
		StartTime:  "13:00",
		EndTime:    "14:00",
		Purpose:    "touching",
		Name:       "tester",
		Department: domain.Known(domain.DeptCAM),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Reservation{
		UserID:     userID,
		Date:       date,
		Space:      domain.SpaceVisionFactory3,
		StartTime:  "12:30",
		EndTime:    "13:30",
		Purpose:    "overlap",
		Name:       "tester",
		Department: domain.Known(domain.DeptCAM),
	})
	assert.ErrorIs(t, err, ErrOverlap)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:00 ~ 13:00", got.Range().String())
	assert.Equal(t, domain.Known(domain.DeptCAM), got.Department)

	list, err := repo.List(ctx, domain.ReservationFilter{Date: &date, Space: ptr.Ptr(domain.SpaceVisionFactory3)})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrReservationNotFound)
}

func TestCreateWithNullUpdatedAt(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	db, stub := newStubDB(stubRows{
		columns: []string{"created_at", "updated_at"},
		values:  [][]driver.Value{{createdAt, nil}},
	})
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		UserID:     uuid.New(),
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Space:      domain.SpaceVisionFactory3,
		StartTime:  "12:00",
		EndTime:    "13:00",
		Purpose:    "회의",
		Name:       "tester",
		Department: domain.Known(domain.DeptCAM),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, createdAt, res.CreatedAt)
	assert.True(t, res.UpdatedAt.IsZero())

	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], "INSERT INTO reservations")
	assert.Contains(t, stub.queries[0], "RETURNING created_at, updated_at")
}

func TestCreateKeepsIDAndCreatedAt(t *testing.T) {
	id := uuid.New()
	createdAt := time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	db, stub := newStubDB(stubRows{
		columns: []string{"created_at", "updated_at"},
		values:  [][]driver.Value{{createdAt, updatedAt}},
	})
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		ID:         id,
		UserID:     uuid.New(),
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Space:      domain.SpaceVisionFactory3,
		StartTime:  "14:00",
		EndTime:    "15:30",
		Purpose:    "회의",
		Name:       "tester",
		Department: domain.Known(domain.DeptCAM),
		CreatedAt:  createdAt,
	})

	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, updatedAt, res.UpdatedAt)

	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], "created_at) VALUES")
	assert.Equal(t, id.String(), stub.args[0][0])
}
