package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDateRange = errors.New("invalid_date_range")
)

// DateRange is an inclusive span of UTC calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// ParseDateRange parses YYYY-MM-DD bounds.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, end)
	}
	return NewDateRange(s, e), nil
}

// LastDays returns the range of n calendar days ending on today, inclusive.
func LastDays(today time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end := truncateDay(today)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Validate rejects reversed ranges and ranges outside [epoch, today].
func (r DateRange) Validate(epoch, today time.Time) error {
	epoch = truncateDay(epoch)
	today = truncateDay(today)
	switch {
	case r.Start.IsZero() || r.End.IsZero():
		return fmt.Errorf("%w: both bounds are required", ErrInvalidDateRange)
	case r.Start.After(r.End):
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidDateRange, r.StartLabel(), r.EndLabel())
	case r.Start.Before(epoch):
		return fmt.Errorf("%w: start %s is before %s", ErrInvalidDateRange, r.StartLabel(), epoch.Format(DateLayout))
	case r.End.After(today):
		return fmt.Errorf("%w: end %s is in the future", ErrInvalidDateRange, r.EndLabel())
	}
	return nil
}

// Contains reports whether t falls on any day of the range.
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

func (r DateRange) StartLabel() string { return r.Start.Format(DateLayout) }

func (r DateRange) EndLabel() string { return r.End.Format(DateLayout) }

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
