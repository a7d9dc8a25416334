package collector

import (
	"context"

	"DragonBonus/internal/model"
)

// Fetcher defines the interface for fetching exchange trading volumes.
type Fetcher interface {
	FetchVolumes(ctx context.Context) ([]model.CoinVolume, error)
	Name() string
}
