package calculator

import (
	"fmt"
	"math"

	"DragonBonus/internal/model"
)

// Charge is the trading fee rate that funds the bonus pool.
const Charge = 2e-3

// VolumeUnit converts an average volume given in 亿 to currency units.
const VolumeUnit = 1e8

// CalculateByBonus dilutes a bonus pool anchored to startDay over [startDay, endDay].
// Each day the pool's share is startDayBonus * startDayRelease / totalRelease,
// with totalRelease growing by that day's release before the share is taken.
func CalculateByBonus(startDayBonus float64, startDay, endDay uint32) (totalRelease, totalBonus float64, err error) {
	err = walk(startDayBonus, startDay, endDay, func(row model.DayRow) {
		totalRelease = row.TotalRelease
		totalBonus = row.CumulativeBonus
	})
	if err != nil {
		return 0, 0, err
	}
	return totalRelease, totalBonus, nil
}

// CalculateByVolume converts an average daily trading volume (in 亿) into a
// start-day bonus pool and runs the bonus engine over the range.
func CalculateByVolume(avgVolume float64, startDay, endDay uint32) (*model.BonusResult, error) {
	if err := checkVolume(avgVolume); err != nil {
		return nil, err
	}
	if err := checkRange(startDay, endDay); err != nil {
		return nil, err
	}

	startDayBonus, err := startBonus(avgVolume, startDay)
	if err != nil {
		return nil, err
	}
	totalRelease, totalBonus, err := CalculateByBonus(startDayBonus, startDay, endDay)
	if err != nil {
		return nil, err
	}

	days := float64(endDay-startDay) + 1
	return &model.BonusResult{
		StartDay:      startDay,
		EndDay:        endDay,
		AvgVolume:     avgVolume,
		StartDayBonus: startDayBonus,
		TotalRelease:  totalRelease,
		TotalBonus:    totalBonus,
		DailyBonus:    totalBonus / days,
	}, nil
}

// Schedule returns every step of the bonus engine for a volume-derived pool.
// The last row matches what CalculateByVolume reports for the same inputs.
func Schedule(avgVolume float64, startDay, endDay uint32) ([]model.DayRow, error) {
	if err := checkVolume(avgVolume); err != nil {
		return nil, err
	}
	if err := checkRange(startDay, endDay); err != nil {
		return nil, err
	}
	startDayBonus, err := startBonus(avgVolume, startDay)
	if err != nil {
		return nil, err
	}

	rows := make([]model.DayRow, 0, int(endDay-startDay)+1)
	err = walk(startDayBonus, startDay, endDay, func(row model.DayRow) {
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func startBonus(avgVolume float64, startDay uint32) (float64, error) {
	release, err := DailyRelease(startDay)
	if err != nil {
		return 0, err
	}
	if release == 0 {
		return 0, fmt.Errorf("%w: release on day %d has decayed to zero", ErrInvalidInput, startDay)
	}
	return avgVolume * VolumeUnit * Charge / release, nil
}

func checkVolume(avgVolume float64) error {
	if avgVolume < 0 || math.IsNaN(avgVolume) || math.IsInf(avgVolume, 0) {
		return fmt.Errorf("%w: average volume must be a non-negative number, got %v", ErrInvalidInput, avgVolume)
	}
	return nil
}

func checkRange(startDay, endDay uint32) error {
	if startDay < 1 {
		return fmt.Errorf("%w: start day must be >= 1, got %d", ErrInvalidInput, startDay)
	}
	if endDay < startDay {
		return fmt.Errorf("%w: end day %d is before start day %d", ErrInvalidInput, endDay, startDay)
	}
	return nil
}

func walk(startDayBonus float64, startDay, endDay uint32, visit func(model.DayRow)) error {
	if err := checkRange(startDay, endDay); err != nil {
		return err
	}

	totalRelease, err := TotalRelease(startDay)
	if err != nil {
		return err
	}
	startDayRelease, err := DailyRelease(startDay)
	if err != nil {
		return err
	}

	var totalBonus float64
	// uint64 so that endDay == MaxUint32 terminates.
	for d := uint64(startDay); d <= uint64(endDay); d++ {
		day := uint32(d)
		release, err := DailyRelease(day)
		if err != nil {
			return err
		}
		if day != startDay {
			totalRelease += release
		}
		dayBonus := startDayBonus * startDayRelease / totalRelease
		totalBonus += dayBonus

		period, _ := Period(day)
		periodDay, _ := PeriodDay(day)
		visit(model.DayRow{
			Day:             day,
			Period:          period,
			PeriodDay:       periodDay,
			DailyRelease:    release,
			TotalRelease:    totalRelease,
			DayBonus:        dayBonus,
			CumulativeBonus: totalBonus,
		})
	}
	return nil
}
