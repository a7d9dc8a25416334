package recorder

import "DragonBonus/internal/model"

// Recorder persists daily snapshots and bonus calculations for later comparison.
type Recorder interface {
	RecordSnapshot(snap *model.DaySnapshot) error
	RecordCalculation(res *model.BonusResult) error
	// SnapshotByDate returns nil, nil when nothing was recorded for date.
	SnapshotByDate(date string) (*model.DaySnapshot, error)
	// RecentSnapshots returns up to limit snapshots, oldest first.
	RecentSnapshots(limit int) ([]*model.DaySnapshot, error)
	Close() error
}
