package model

import "time"

// BonusResult is the output of the volume driver for a day range.
type BonusResult struct {
	StartDay      uint32
	EndDay        uint32
	AvgVolume     float64 // 亿
	StartDayBonus float64
	TotalRelease  float64
	TotalBonus    float64
	DailyBonus    float64
}

// DayRow is one step of the bonus engine's day-by-day trajectory.
type DayRow struct {
	Day             uint32  `csv:"day"`
	Period          uint32  `csv:"period"`
	PeriodDay       uint32  `csv:"period_day"`
	DailyRelease    float64 `csv:"daily_release"`
	TotalRelease    float64 `csv:"total_release"`
	DayBonus        float64 `csv:"day_bonus"`
	CumulativeBonus float64 `csv:"cumulative_bonus"`
}

// DaySnapshot holds the DT economics of a single calendar day.
type DaySnapshot struct {
	Date         string // 2006-01-02, Beijing time
	Day          uint32
	Period       uint32
	TodayRelease float64
	TotalRelease float64
	Volume       float64 // 24h trading volume, CNY
	Income       float64 // fee income, CNY
	CostHigh     float64
	CostLow      float64
	BonusPerCoin float64
	TakenAt      time.Time
}
