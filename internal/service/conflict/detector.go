package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// ErrInternal возвращается при ошибках репозитория
var ErrInternal = errors.New("conflict: internal error")

// Result результат проверки пересечений
type Result struct {
	Conflict    bool
	Overlapping []domain.TimeRange
}

// Err возвращает *domain.ConflictError при пересечении, иначе nil
func (r *Result) Err() error {
	if !r.Conflict {
		return nil
	}
	return &domain.ConflictError{Overlapping: r.Overlapping}
}

// Detector предварительная проверка пересечений для понятного сообщения пользователю.
// Окончательную гарантию дает exclusion constraint в БД.
type Detector struct {
	repo   ReservationRepository
	logger Logger
}

// NewDetector создает детектор
func NewDetector(repo ReservationRepository, logger Logger) *Detector {
	return &Detector{repo: repo, logger: logger}
}

// Check читает бронирования на (date, space) и ищет пересечения с proposed.
// Внутри транзакции репозиторий блокирует прочитанные строки.
func (d *Detector) Check(
	ctx context.Context,
	date time.Time,
	space domain.Space,
	proposed domain.TimeRange,
	excludeID *uuid.UUID,
) (*Result, error) {
	existing, err := d.repo.List(ctx, domain.ReservationFilter{Date: &date, Space: &space})
	if err != nil {
		d.logger.Error("CheckConflict: failed to list reservations date=%s space=%s: %v",
			date.Format(domain.DateFormat), space, err)
		return nil, fmt.Errorf("%w: list reservations: %w", ErrInternal, err)
	}

	overlapping := FindOverlaps(existing, proposed, excludeID, d.logger)
	if len(overlapping) > 0 {
		d.logger.Warn("CheckConflict: %s on %s %s overlaps %d reservation(s)",
			proposed, date.Format(domain.DateFormat), space, len(overlapping))
	}

	return &Result{Conflict: len(overlapping) > 0, Overlapping: overlapping}, nil
}

// FindOverlaps возвращает диапазоны existing, пересекающиеся с proposed.
// Строка excludeID пропускается; время нормализуется до HH:MM, нечитаемые строки пропускаются с предупреждением.
func FindOverlaps(existing []*domain.Reservation, proposed domain.TimeRange, excludeID *uuid.UUID, logger Logger) []domain.TimeRange {
	overlapping := make([]domain.TimeRange, 0)

	for _, r := range existing {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}

		tr, err := normalize(r.Range())
		if err != nil {
			logger.Warn("CheckConflict: skipping reservation id=%s with invalid time range %q ~ %q: %v",
				r.ID, r.StartTime, r.EndTime, err)
			continue
		}

		if proposed.Overlaps(tr) {
			overlapping = append(overlapping, tr)
		}
	}

	return overlapping
}

func normalize(tr domain.TimeRange) (domain.TimeRange, error) {
	start, err := types.NewTimeStringFromString(string(tr.Start))
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := types.NewTimeStringFromString(string(tr.End))
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
}
