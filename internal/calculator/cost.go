package calculator

import (
	"fmt"

	"DragonBonus/internal/model"
)

// Income returns the fee income generated by a trading volume.
func Income(amount float64) float64 {
	return Charge * amount
}

// MiningCost returns what one DT costs when rate of the fees paid is spent
// to mine the day's release.
func MiningCost(todayRelease, amount, rate float64) (float64, error) {
	if todayRelease <= 0 {
		return 0, fmt.Errorf("%w: today release must be positive", ErrInvalidInput)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: cost rate must be positive", ErrInvalidInput)
	}
	return Income(amount) / todayRelease / rate, nil
}

// BonusPerCoin spreads the fee income of a volume over the circulating supply.
func BonusPerCoin(amount, totalRelease float64) (float64, error) {
	if totalRelease <= 0 {
		return 0, fmt.Errorf("%w: total release must be positive", ErrInvalidInput)
	}
	return Income(amount) / totalRelease, nil
}

// Snapshot computes the economics of a single day for a 24h volume given in CNY.
func Snapshot(day uint32, amount, costHighRate, costLowRate float64) (*model.DaySnapshot, error) {
	period, err := Period(day)
	if err != nil {
		return nil, err
	}
	today, err := DailyRelease(day)
	if err != nil {
		return nil, err
	}
	total, err := TotalRelease(day)
	if err != nil {
		return nil, err
	}

	high, err := MiningCost(today, amount, costHighRate)
	if err != nil {
		return nil, fmt.Errorf("high cost: %w", err)
	}
	low, err := MiningCost(today, amount, costLowRate)
	if err != nil {
		return nil, fmt.Errorf("low cost: %w", err)
	}
	bonus, err := BonusPerCoin(amount, total)
	if err != nil {
		return nil, err
	}

	return &model.DaySnapshot{
		Day:          day,
		Period:       period,
		TodayRelease: today,
		TotalRelease: total,
		Volume:       amount,
		Income:       Income(amount),
		CostHigh:     high,
		CostLow:      low,
		BonusPerCoin: bonus,
	}, nil
}
