package update_reservation

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

// UseCase use case для изменения бронирования
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

// Execute выполняет use case изменения бронирования.
// Смена времени выполняется как удаление и повторная вставка с тем же ID;
// прочие поля меняются на месте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("UpdateReservation: id=%s by user=%s, time=%s~%s",
		req.ID, req.Session.UserID, req.Form.StartTime, req.Form.EndTime)

	if req.Session.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	// 1. Права доступа до любой записи
	current, err := uc.load(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Валидация формы
	valid, err := form.Validate(uc.validator, &req.Form, current.Department, nil)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("UpdateReservation: validation failed: %v", err)
			return nil, err
		}
		uc.logger.Error("UpdateReservation: validator error: %v", err)
		return nil, fmt.Errorf("%w: validate: %v", ErrInternal, err)
	}

	// 3. Окно бронирования для исходной даты
	now := uc.timeProvider.Now().In(uc.location)
	date := types.DateIn(current.Date, uc.location)

	if err := uc.policy.CheckEntry(date, req.Session, now); err != nil {
		uc.logger.Warn("UpdateReservation: booking window rejected: %v", err)
		uc.metrics.RecordReservation(metrics.OutcomeWindowRejected)
		return nil, err
	}

	// 4. Повторная проверка под блокировкой и запись
	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}

		check, err := uc.detector.Check(txCtx, date, locked.Space, valid.Range, &locked.ID)
		if err != nil {
			return fmt.Errorf("%w: check conflicts: %w", ErrInternal, err)
		}
		if check.Conflict {
			return check.Err()
		}

		rangeChanged := !locked.SameTimeRange(locked.Date, locked.Space, valid.Range)

		next := *locked
		next.StartTime = valid.Range.Start
		next.EndTime = valid.Range.End
		next.Purpose = valid.Purpose
		next.Name = valid.Name
		next.Department = valid.Department
		next.IsProvisional = valid.IsProvisional

		if rangeChanged {
			result, err = uc.replace(txCtx, &next)
		} else {
			result, err = uc.reservationRepo.Update(txCtx, &next)
		}
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: write reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleWriteError(ctx, date, current, valid.Range, err)
	}

	uc.metrics.RecordReservation(metrics.OutcomeUpdated)
	uc.logger.Info("UpdateReservation: successfully updated reservation id=%s", result.ID)

	resp := models.FromDomainReservation(result)
	return &resp, nil
}

// load получает бронирование и проверяет, что вызывающий может его менять
func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Reservation, error) {
	r, err := uc.reservationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%s not found", req.ID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: get reservation: %w", ErrInternal, err)
	}

	if !req.Session.CanModify(r.UserID) {
		uc.logger.Warn("UpdateReservation: access denied for user=%s to reservation id=%s", req.Session.UserID, req.ID)
		return nil, ErrAccessDenied
	}

	return r, nil
}

// replace удаляет строку и вставляет ее заново с тем же ID и created_at
func (uc *UseCase) replace(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if err := uc.reservationRepo.Delete(ctx, r.ID); err != nil {
		return nil, err
	}
	return uc.reservationRepo.Create(ctx, r)
}

// handleWriteError приводит отказ БД из-за гонки к ошибке пересечения
func (uc *UseCase) handleWriteError(ctx context.Context, date time.Time, current *domain.Reservation, tr domain.TimeRange, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordReservation(metrics.OutcomeConflict)
		return err
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrAccessDenied):
		return err
	}

	if errors.Is(err, reservationRepo.ErrOverlap) || errors.Is(err, txmanager.ErrSerializationFailure) {
		uc.logger.Warn("UpdateReservation: concurrent write rejected by database: %v", err)
		uc.metrics.RecordReservation(metrics.OutcomeConflict)

		conflictErr := &domain.ConflictError{}
		if check, checkErr := uc.detector.Check(ctx, date, current.Space, tr, &current.ID); checkErr == nil {
			conflictErr.Overlapping = check.Overlapping
		}
		return conflictErr
	}

	uc.logger.Error("UpdateReservation: failed to update reservation id=%s: %v", current.ID, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
