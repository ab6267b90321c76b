package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// ErrInvalidTimeRange is returned when end is not after start
var ErrInvalidTimeRange = errors.New("domain: end time must be after start time")

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks both bounds and Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: %s", ErrInvalidTimeRange, r)
	}
	return nil
}

// Overlaps touching endpoints do not overlap
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// String "10:30 ~ 11:30"
func (r TimeRange) String() string {
	return fmt.Sprintf("%s ~ %s", r.Start, r.End)
}

// Reservation represents one booked contiguous range on a date and space
type Reservation struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Date          time.Time
	Space         Space
	StartTime     types.TimeString
	EndTime       types.TimeString
	Purpose       string
	Name          string
	Department    Department
	IsProvisional bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns [StartTime, EndTime)
func (r *Reservation) Range() TimeRange {
	return TimeRange{Start: r.StartTime, End: r.EndTime}
}

// SameTimeRange returns true if date, space and range are unchanged
func (r *Reservation) SameTimeRange(date time.Time, space Space, tr TimeRange) bool {
	return types.IsSameDay(r.Date, date) && r.Space == space && r.Range() == tr
}

// ReservationFilter отбор бронирований. Пустой фильтр - все бронирования.
type ReservationFilter struct {
	Date   *time.Time
	Space  *Space
	UserID *uuid.UUID
	From   *time.Time // включительно
	To     *time.Time // включительно
}

// ErrConflict matches every *ConflictError via errors.Is
var ErrConflict = errors.New("domain: reservation time overlaps an existing reservation")

// ConflictError lists the existing ranges a proposed reservation overlaps
type ConflictError struct {
	Overlapping []TimeRange
}

func (e *ConflictError) Error() string {
	if len(e.Overlapping) == 0 {
		return "해당 시간대에 이미 예약이 있습니다"
	}
	return "해당 시간대에 이미 예약이 있습니다: " + e.Ranges()
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Ranges "10:30 ~ 11:30, 13:00 ~ 14:00"
func (e *ConflictError) Ranges() string {
	parts := make([]string, 0, len(e.Overlapping))
	for _, r := range e.Overlapping {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
