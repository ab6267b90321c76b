package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/psqlbuilder"
)

const table = "reservations"

const (
	pqExclusionViolation  = "23P01"
	pqCheckViolation      = "23514"
	pqForeignKeyViolation = "23503"
)

var columns = []string{
	"id",
	"user_id",
	"date",
	"space",
	"start_time",
	"end_time",
	"purpose",
	"name",
	"department",
	"is_provisional",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Пустой ID генерируется; заданный ID и CreatedAt сохраняются
// (повторная вставка при изменении времени).
// Пересечение с существующим бронированием отклоняется constraint'ом и возвращает ErrOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	cols := []string{
		"id",
		"user_id",
		"date",
		"space",
		"start_time",
		"end_time",
		"purpose",
		"name",
		"department",
		"is_provisional",
	}
	vals := []interface{}{
		res.ID,
		res.UserID,
		res.Date.Format(domain.DateFormat),
		res.Space,
		res.StartTime,
		res.EndTime,
		res.Purpose,
		res.Name,
		res.Department,
		res.IsProvisional,
	}
	if !res.CreatedAt.IsZero() {
		cols = append(cols, "created_at")
		vals = append(vals, res.CreatedAt)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &updatedAt); err != nil {
		return nil, mapWriteError("Create", err)
	}
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// List возвращает бронирования по фильтру, отсортированные по дате и времени начала.
// Внутри транзакции выборка по конкретным (date, space) блокируется FOR UPDATE.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func buildListQuery(filter domain.ReservationFilter, inTx bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).From(table)

	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": filter.To.Format(domain.DateFormat)})
	}
	if filter.Space != nil {
		builder = builder.Where(squirrel.Eq{"space": string(*filter.Space)})
	}
	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	builder = builder.OrderBy("date ASC", "start_time ASC")

	if inTx && filter.Date != nil && filter.Space != nil {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

// Update заменяет время, назначение, имя, отдел и признак предварительного бронирования.
// Дата и помещение не меняются.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("purpose", res.Purpose).
		Set("name", res.Name).
		Set("department", res.Department).
		Set("is_provisional", res.IsProvisional).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return res, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		date      time.Time
		space     string
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&date,
		&space,
		&res.StartTime,
		&res.EndTime,
		&res.Purpose,
		&res.Name,
		&res.Department,
		&res.IsProvisional,
		&res.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит как полночь UTC
	res.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	res.Space = domain.Space(space)
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// mapWriteError переводит ошибки constraint'ов в ошибки репозитория.
// Исходная ошибка остается в цепочке (txmanager распознает по ней 40001).
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return fmt.Errorf("%w: %s: %v", ErrOverlap, op, pqErr.Message)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s: %v", ErrInvalidTimeRange, op, pqErr.Message)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s: %v", ErrUserNotFound, op, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
}
