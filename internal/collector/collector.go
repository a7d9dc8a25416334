package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"DragonBonus/internal/calculator"
	"DragonBonus/internal/model"
)

// BeijingTime is the zone dragonex days and report dates are kept in.
var BeijingTime = time.FixedZone("BeiJing", 8*3600)

// Collector orchestrates volume fetching and daily DT economics.
type Collector struct {
	Fetcher      Fetcher
	Launch       time.Time
	ExchangeRate float64
	CostHighRate float64
	CostLowRate  float64
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, launch time.Time, exchangeRate, costHighRate, costLowRate float64) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		Launch:       launch,
		ExchangeRate: exchangeRate,
		CostHighRate: costHighRate,
		CostLowRate:  costLowRate,
	}
}

// TotalVolumeCNY sums coin volumes and converts them to CNY.
func (c *Collector) TotalVolumeCNY(coins []model.CoinVolume) float64 {
	var total float64
	for _, coin := range coins {
		total += coin.Volume
	}
	return total * c.ExchangeRate
}

// Collect fetches today's volumes and computes the snapshot for the issuance day containing now.
func (c *Collector) Collect(ctx context.Context, now time.Time) (*model.DaySnapshot, error) {
	day, err := calculator.DayNumber(c.Launch, now)
	if err != nil {
		return nil, fmt.Errorf("day number: %w", err)
	}

	coins, err := c.Fetcher.FetchVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch volumes: %w", err)
	}
	amount := c.TotalVolumeCNY(coins)
	if amount == 0 {
		log.Printf("[WARN] %s reported zero volume for day %d", c.Fetcher.Name(), day)
	}

	snap, err := c.SnapshotFor(day, amount)
	if err != nil {
		return nil, err
	}
	snap.Date = now.In(BeijingTime).Format("2006-01-02")
	snap.TakenAt = now
	return snap, nil
}

// SnapshotFor computes the snapshot of a given day and CNY volume without fetching.
func (c *Collector) SnapshotFor(day uint32, amount float64) (*model.DaySnapshot, error) {
	snap, err := calculator.Snapshot(day, amount, c.CostHighRate, c.CostLowRate)
	if err != nil {
		return nil, fmt.Errorf("snapshot day %d: %w", day, err)
	}
	return snap, nil
}
