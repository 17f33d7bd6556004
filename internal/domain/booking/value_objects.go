package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidStayRange = errors.New("check-out must be after check-in")
	ErrMissingDates     = errors.New("both check-in and check-out dates are required")
)

// StayRange is a date-granular [start, end) range. End must be strictly
// after Start; a stay of zero nights is not bookable.
type StayRange struct {
	start time.Time
	end   time.Time
}

func NewStayRange(start, end time.Time) (StayRange, error) {
	if start.IsZero() || end.IsZero() {
		return StayRange{}, ErrMissingDates
	}

	s, e := truncateToDay(start), truncateToDay(end)
	if !e.After(s) {
		return StayRange{}, ErrInvalidStayRange
	}

	return StayRange{start: s, end: e}, nil
}

func (s StayRange) Start() time.Time { return s.start }
func (s StayRange) End() time.Time   { return s.end }

// Nights is the number of whole days between check-in and check-out.
func (s StayRange) Nights() int32 {
	return int32(s.end.Sub(s.start) / (24 * time.Hour))
}

// truncateToDay keeps the calendar date as written in the timestamp's own
// offset and anchors it at UTC midnight, so the same stay prices identically
// no matter which zone the client sent it in.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type GuestCount struct {
	value int32
}

var (
	ErrGuestCountTooSmall = errors.New("at least one guest is required")
	ErrGuestCountTooLarge = errors.New("guest count exceeds cabin capacity")
)

func NewGuestCount(n, maxCapacity int32) (GuestCount, error) {
	if n < 1 {
		return GuestCount{}, ErrGuestCountTooSmall
	}
	if n > maxCapacity {
		return GuestCount{}, ErrGuestCountTooLarge
	}
	return GuestCount{value: n}, nil
}

func (g GuestCount) Value() int32 {
	return g.value
}

const maxObservationsLength = 1000

var ErrObservationsTooLong = errors.New("observations text is too long")

type Observations struct {
	value string
}

func NewObservations(value string) (Observations, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxObservationsLength {
		return Observations{}, ErrObservationsTooLong
	}
	return Observations{value: trimmed}, nil
}

func (o Observations) String() string {
	return o.value
}

func (o Observations) IsEmpty() bool {
	return o.value == ""
}
