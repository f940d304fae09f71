package entities

import (
	"fmt"
	"time"

	apperr "github.com/nac3nt/Appoint/internal/errors"
)

// Minutes is a wall-clock time of day expressed as minutes from midnight.
type Minutes int

const endOfDay = Minutes(24 * 60)

// ParseClock parses "HH:MM" into Minutes.
func ParseClock(s string) (Minutes, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, apperr.NewValidation(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, apperr.NewValidation(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return Minutes(h*60 + m), nil
}

func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ParseDate parses "YYYY-MM-DD" into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.NewValidation(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// TimeInterval is a half-open [Start, End) time-of-day range on a calendar
// date. End belongs to the next slot: an interval ending at 10:00 does not
// conflict with one starting at 10:00.
type TimeInterval struct {
	Date  time.Time
	Start Minutes
	End   Minutes
}

// NewTimeInterval builds a validated interval. Zero-length and inverted
// ranges are rejected.
func NewTimeInterval(date time.Time, start, end Minutes) (TimeInterval, error) {
	if start < 0 || end > endOfDay {
		return TimeInterval{}, apperr.NewValidation("time must be within the day")
	}
	if start >= end {
		return TimeInterval{}, apperr.NewValidation("start time must be before end time")
	}
	return TimeInterval{Date: truncateToDay(date), Start: start, End: end}, nil
}

// ParseInterval builds a validated interval from wire-format strings.
func ParseInterval(dateStr, startStr, endStr string) (TimeInterval, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return TimeInterval{}, err
	}
	start, err := ParseClock(startStr)
	if err != nil {
		return TimeInterval{}, err
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(date, start, end)
}

// IntervalOf builds an interval from already-persisted parts without
// re-validating. Rows coming out of the store were validated on the way in.
func IntervalOf(date time.Time, startMinute, endMinute int) TimeInterval {
	return TimeInterval{Date: truncateToDay(date), Start: Minutes(startMinute), End: Minutes(endMinute)}
}

func (t TimeInterval) SameDate(o TimeInterval) bool {
	return t.Date.Equal(o.Date)
}

// Overlaps reports whether the two intervals share open interior on the same
// date. Touching endpoints do not overlap, so back-to-back bookings are
// allowed.
func (t TimeInterval) Overlaps(o TimeInterval) bool {
	return t.SameDate(o) && t.Start < o.End && o.Start < t.End
}

// Covers reports whether t fully contains o on the same date.
func (t TimeInterval) Covers(o TimeInterval) bool {
	return t.SameDate(o) && t.Start <= o.Start && t.End >= o.End
}

// AdjacentOrOverlapping reports whether the two intervals form one
// contiguous span. Unlike Overlaps this includes touching endpoints, so
// [09:00,10:00) and [10:00,11:00) merge into a single coverage region.
func (t TimeInterval) AdjacentOrOverlapping(o TimeInterval) bool {
	if !t.SameDate(o) {
		return false
	}
	if t.Start <= o.Start {
		return t.End >= o.Start
	}
	return o.End >= t.Start
}

func (t TimeInterval) DateString() string {
	return t.Date.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
