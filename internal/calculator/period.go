package calculator

import (
	"errors"
	"fmt"
	"time"
)

// DaysPerPeriod is the length of one halving period.
const DaysPerPeriod = 365

// ErrInvalidInput is returned for days, ranges or amounts the formulas cannot take.
var ErrInvalidInput = errors.New("invalid input")

// Period returns the 1-based halving period that contains day.
func Period(day uint32) (uint32, error) {
	if day < 1 {
		return 0, fmt.Errorf("%w: day must be >= 1, got %d", ErrInvalidInput, day)
	}
	return (day-1)/DaysPerPeriod + 1, nil
}

// PeriodDay returns the offset of day within its period, in [1, 365].
func PeriodDay(day uint32) (uint32, error) {
	if day < 1 {
		return 0, fmt.Errorf("%w: day must be >= 1, got %d", ErrInvalidInput, day)
	}
	rest := day % DaysPerPeriod
	if rest == 0 {
		rest = DaysPerPeriod
	}
	return rest, nil
}

// DayNumber returns which issuance day now falls on, counting the launch instant as day 1.
func DayNumber(launch, now time.Time) (uint32, error) {
	if now.Before(launch) {
		return 0, fmt.Errorf("%w: %s is before launch %s", ErrInvalidInput,
			now.Format(time.RFC3339), launch.Format(time.RFC3339))
	}
	days := int64(now.Sub(launch) / (24 * time.Hour))
	return uint32(days) + 1, nil
}
