package collector

import (
	"context"

	"DragonBonus/internal/calculator"
	"DragonBonus/internal/model"
)

// StaticFetcher reports a fixed average volume, for offline runs and testing.
type StaticFetcher struct {
	AvgVolume    float64 // 亿 CNY
	ExchangeRate float64
}

// NewStaticFetcher creates a fetcher whose CNY total equals avgVolume 亿.
func NewStaticFetcher(avgVolume, exchangeRate float64) *StaticFetcher {
	return &StaticFetcher{AvgVolume: avgVolume, ExchangeRate: exchangeRate}
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) FetchVolumes(_ context.Context) ([]model.CoinVolume, error) {
	return []model.CoinVolume{{
		Name:   "AVG",
		Volume: s.AvgVolume * calculator.VolumeUnit / s.ExchangeRate,
	}}, nil
}
