package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// SlotDurationMinutes length of one atomic slot
const SlotDurationMinutes = 30

const (
	FirstSlotStart types.TimeString = "07:00"
	LastSlotStart  types.TimeString = "21:30"
	DayEnd         types.TimeString = "22:00" // terminal boundary, never a start
)

// ErrInvalidSlotRange is returned when a range does not lie on the slot grid
// or start is not before end
var ErrInvalidSlotRange = errors.New("domain: invalid slot range")

var (
	startSlots = buildStartSlots()
	endSlots   = append(append([]types.TimeString{}, startSlots[1:]...), DayEnd)
)

func buildStartSlots() []types.TimeString {
	first, _ := FirstSlotStart.Minutes()
	last, _ := LastSlotStart.Minutes()

	slots := make([]types.TimeString, 0, (last-first)/SlotDurationMinutes+1)
	for m := first; m <= last; m += SlotDurationMinutes {
		ts, _ := types.NewTimeStringFromMinutes(m)
		slots = append(slots, ts)
	}
	return slots
}

// StartSlots returns the 30 bookable start times 07:00..21:30
func StartSlots() []types.TimeString {
	return append([]types.TimeString(nil), startSlots...)
}

// EndSlots returns the valid end times 07:30..22:00
func EndSlots() []types.TimeString {
	return append([]types.TimeString(nil), endSlots...)
}

// SlotCount number of start slots in a day
func SlotCount() int {
	return len(startSlots)
}

// SlotIndex returns the position of t among start slots, or -1
func SlotIndex(t types.TimeString) int {
	for i, s := range startSlots {
		if s == t {
			return i
		}
	}
	return -1
}

// EndIndex returns the exclusive start-slot index for an end time, or -1.
// DayEnd maps to SlotCount().
func EndIndex(t types.TimeString) int {
	for i, s := range endSlots {
		if s == t {
			return i + 1
		}
	}
	return -1
}

// SlotAt returns the start slot at index i
func SlotAt(i int) (types.TimeString, bool) {
	if i < 0 || i >= len(startSlots) {
		return "", false
	}
	return startSlots[i], true
}

// IsStartSlot reports whether t is a bookable start time
func IsStartSlot(t types.TimeString) bool {
	return SlotIndex(t) >= 0
}

// IsEndSlot reports whether t is a valid end time
func IsEndSlot(t types.TimeString) bool {
	return EndIndex(t) >= 0
}

// NextBoundary returns the end of the slot starting at t
func NextBoundary(t types.TimeString) (types.TimeString, bool) {
	i := SlotIndex(t)
	if i < 0 {
		return "", false
	}
	return endSlots[i], true
}

// SlotsBetween returns the start slots covering [start, end).
func SlotsBetween(start, end types.TimeString) ([]types.TimeString, error) {
	startIdx := SlotIndex(start)
	if startIdx < 0 {
		return []types.TimeString{}, fmt.Errorf("%w: start %q is not a slot", ErrInvalidSlotRange, start)
	}
	endIdx := EndIndex(end)
	if endIdx < 0 {
		return []types.TimeString{}, fmt.Errorf("%w: end %q is not a slot boundary", ErrInvalidSlotRange, end)
	}
	if startIdx >= endIdx {
		return []types.TimeString{}, fmt.Errorf("%w: %s is not before %s", ErrInvalidSlotRange, start, end)
	}
	return append([]types.TimeString(nil), startSlots[startIdx:endIdx]...), nil
}
