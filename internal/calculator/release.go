package calculator

import (
	"fmt"
	"math"
)

const (
	// BaseRelease is the daily release of the first period.
	BaseRelease = 51200.0
	// BaseDamping is the factor applied to the daily release at each period boundary.
	BaseDamping = 0.5
)

// PeriodDayRelease returns the amount released on each day of the given period.
func PeriodDayRelease(period uint32) (float64, error) {
	if period < 1 {
		return 0, fmt.Errorf("%w: period must be >= 1, got %d", ErrInvalidInput, period)
	}
	return BaseRelease * math.Pow(BaseDamping, float64(period-1)), nil
}

// DailyRelease returns the amount released on day.
func DailyRelease(day uint32) (float64, error) {
	period, err := Period(day)
	if err != nil {
		return 0, err
	}
	return PeriodDayRelease(period)
}

// PeriodTotalRelease returns the amount released from the first day of day's period through day.
func PeriodTotalRelease(day uint32) (float64, error) {
	periodDay, err := PeriodDay(day)
	if err != nil {
		return 0, err
	}
	release, err := DailyRelease(day)
	if err != nil {
		return 0, err
	}
	return float64(periodDay) * release, nil
}

// TotalRelease returns the cumulative amount released from day 1 through day.
// Completed periods contribute a full 365 days at their own rate; the current
// period contributes only the days elapsed so far.
func TotalRelease(day uint32) (float64, error) {
	period, err := Period(day)
	if err != nil {
		return 0, err
	}

	var total float64
	for p := uint32(1); p < period; p++ {
		r, _ := PeriodDayRelease(p)
		if r == 0 {
			// Every later period has underflowed as well.
			break
		}
		total += DaysPerPeriod * r
	}

	current, err := PeriodTotalRelease(day)
	if err != nil {
		return 0, err
	}
	return total + current, nil
}
