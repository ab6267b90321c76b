package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
	form "github.com/m04kA/SMC-SpaceBooking/internal/usecase/reservation_form"
	"github.com/m04kA/SMC-SpaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	detector        ConflictDetector
	policy          WindowPolicy
	txManager       TransactionManager
	validator       Validator
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	detector ConflictDetector,
	policy WindowPolicy,
	txManager TransactionManager,
	validator Validator,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		detector:        detector,
		policy:          policy,
		txManager:       txManager,
		validator:       validator,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции;
// гонку двух вставок окончательно решает exclusion constraint.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: user=%s, date=%s, space=%s, time=%s~%s",
		req.Session.UserID, req.Date.Format(domain.DateFormat), req.Space, req.Form.StartTime, req.Form.EndTime)

	if req.Session.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	// 1. Валидация формы
	form.DefaultEndTime(&req.Form)

	extra := domain.FieldErrors{}
	space := domain.Space(req.Space)
	if !space.IsValid() {
		extra.Add("space", msgSpace)
	}
	if req.Date.IsZero() {
		extra.Add("date", msgDate)
	}

	valid, err := form.Validate(uc.validator, &req.Form, req.Session.Department, extra)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("CreateReservation: validation failed: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateReservation: validator error: %v", err)
		return nil, fmt.Errorf("%w: validate: %v", ErrInternal, err)
	}

	// 2. Окно бронирования
	now := uc.timeProvider.Now().In(uc.location)
	date := types.DateIn(req.Date, uc.location)

	if err := uc.policy.CheckEntry(date, req.Session, now); err != nil {
		uc.logger.Warn("CreateReservation: booking window rejected: %v", err)
		uc.metrics.RecordReservation(metrics.OutcomeWindowRejected)
		return nil, err
	}

	// 3. Проверка пересечений и вставка в сериализуемой транзакции
	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		check, err := uc.detector.Check(txCtx, date, space, valid.Range, nil)
		if err != nil {
			return fmt.Errorf("%w: check conflicts: %w", ErrInternal, err)
		}
		if check.Conflict {
			return check.Err()
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:        req.Session.UserID,
			Date:          date,
			Space:         space,
			StartTime:     valid.Range.Start,
			EndTime:       valid.Range.End,
			Purpose:       valid.Purpose,
			Name:          valid.Name,
			Department:    valid.Department,
			IsProvisional: valid.IsProvisional,
		})
		if err != nil {
			return fmt.Errorf("%w: create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.handleWriteError(ctx, date, space, valid.Range, err)
	}

	uc.metrics.RecordReservation(metrics.OutcomeCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%s", result.ID)

	resp := models.FromDomainReservation(result)
	return &resp, nil
}

// handleWriteError приводит отказ БД из-за гонки к ошибке пересечения
func (uc *UseCase) handleWriteError(ctx context.Context, date time.Time, space domain.Space, tr domain.TimeRange, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		uc.metrics.RecordReservation(metrics.OutcomeConflict)
		return err
	}

	if errors.Is(err, reservationRepo.ErrOverlap) || errors.Is(err, txmanager.ErrSerializationFailure) {
		uc.logger.Warn("CreateReservation: concurrent write rejected by database: %v", err)
		uc.metrics.RecordReservation(metrics.OutcomeConflict)

		// Перечитываем вне транзакции, чтобы показать занятые диапазоны
		conflictErr := &domain.ConflictError{}
		if check, checkErr := uc.detector.Check(ctx, date, space, tr, nil); checkErr == nil {
			conflictErr.Overlapping = check.Overlapping
		}
		return conflictErr
	}

	uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
