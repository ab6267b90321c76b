package update_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/conflict"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConflictDetector предварительная проверка пересечений
type ConflictDetector interface {
	Check(ctx context.Context, date time.Time, space domain.Space, proposed domain.TimeRange, excludeID *uuid.UUID) (*conflict.Result, error)
}

// WindowPolicy проверка окна бронирования
type WindowPolicy interface {
	CheckEntry(date time.Time, session domain.Session, today time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Validator проверка struct-тегов
type Validator interface {
	Struct(s interface{}, messages validation.Messages) (map[string]string, error)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	RecordReservation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
