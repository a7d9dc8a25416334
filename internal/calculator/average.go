package calculator

import (
	"errors"

	"DragonBonus/internal/model"
)

// MovingAverage computes the simple moving average of the last window values.
func MovingAverage(values []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(values) < window {
		return 0, errors.New("not enough data for moving average")
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window), nil
}

// AverageVolume returns the average daily volume of the most recent snapshots, in 亿.
// Fewer snapshots than window are averaged as they are.
func AverageVolume(snaps []*model.DaySnapshot, window int) (float64, error) {
	if len(snaps) == 0 {
		return 0, errors.New("no snapshots recorded")
	}
	if window > len(snaps) {
		window = len(snaps)
	}
	avg, err := MovingAverage(extractVolumes(snaps), window)
	if err != nil {
		return 0, err
	}
	return avg / VolumeUnit, nil
}

func extractVolumes(snaps []*model.DaySnapshot) []float64 {
	volumes := make([]float64, len(snaps))
	for i, s := range snaps {
		volumes[i] = s.Volume
	}
	return volumes
}
