package model

// CoinVolume is the 24h market data of one listed coin.
type CoinVolume struct {
	CoinID int
	Name   string
	Price  float64 // USD
	Volume float64 // 24h volume, USD
}
