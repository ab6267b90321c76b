package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/slots"
	"github.com/m04kA/SMC-SpaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свои бронирования, администратор - любые.
func (s *Service) GetByID(ctx context.Context, session domain.Session, id uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, session.UserID)

	r, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !session.CanModify(r.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", session.UserID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainReservation(r)
	return &resp, nil
}

// Delete удаляет бронирование владельца или любое бронирование для администратора
func (s *Service) Delete(ctx context.Context, session domain.Session, id uuid.UUID) error {
	s.logger.Info("Delete: reservation id=%s by user=%s", id, session.UserID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		r, err := s.get(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if !session.CanModify(r.UserID) {
			s.logger.Warn("Delete: access denied for user=%s to reservation id=%s", session.UserID, id)
			return ErrAccessDenied
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordReservation(metrics.OutcomeDeleted)
	s.logger.Info("Delete: reservation id=%s deleted", id)
	return nil
}

// ListMine бронирования вызывающего по дате и времени начала
func (s *Service) ListMine(ctx context.Context, session domain.Session) (*models.ReservationListResponse, error) {
	s.logger.Info("ListMine: user=%s", session.UserID)

	if session.UserID == uuid.Nil {
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{UserID: &session.UserID})
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: found %d reservations for user=%s", len(list), session.UserID)
	return models.FromDomainReservations(list), nil
}

// ListAll все бронирования для администратора; дата и пользователь опциональны
func (s *Service) ListAll(ctx context.Context, session domain.Session, req *models.ListAllRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListAll: by user=%s", session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("ListAll: user=%s is not admin", session.UserID)
		return nil, ErrForbidden
	}

	filter := domain.ReservationFilter{UserID: req.UserID}
	if req.Date != nil {
		date := types.DateOnly(*req.Date)
		filter.Date = &date
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: found %d reservations", len(list))
	return models.FromDomainReservations(list), nil
}

// ResolveSlot находит бронирование, занимающее слот, и его начальный слот
func (s *Service) ResolveSlot(ctx context.Context, session domain.Session, req *models.ResolveSlotRequest) (*models.ResolveSlotResponse, error) {
	s.logger.Info("ResolveSlot: date=%s space=%s time=%s by user=%s",
		req.Date.Format(domain.DateFormat), req.Space, req.Time, session.UserID)

	space := domain.Space(req.Space)
	if !space.IsValid() {
		return nil, fmt.Errorf("%w: unknown space %q", ErrInvalidInput, req.Space)
	}
	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil || !domain.IsStartSlot(t) {
		return nil, fmt.Errorf("%w: time %q is not a slot", ErrInvalidInput, req.Time)
	}

	date := types.DateOnly(req.Date)
	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{Date: &date, Space: &space})
	if err != nil {
		s.logger.Error("ResolveSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: ResolveSlot - repository error: %v", ErrInternal, err)
	}

	grid := slots.ReservationsToSlots(list, s.logger)
	key, entry, found := slots.FindReservationStart(grid, space, t)
	if !found {
		return nil, ErrSlotEmpty
	}

	return &models.ResolveSlotResponse{
		Space:       string(key.Space),
		StartTime:   key.Time.String(),
		Reservation: models.FromDomainReservation(entry.Reservation),
	}, nil
}

func (s *Service) get(ctx context.Context, op string, id uuid.UUID) (*domain.Reservation, error) {
	r, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return r, nil
}
