package recorder

import "DragonBonus/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *model.DaySnapshot) error           { return nil }
func (n *NoopRecorder) RecordCalculation(_ *model.BonusResult) error        { return nil }
func (n *NoopRecorder) SnapshotByDate(_ string) (*model.DaySnapshot, error) { return nil, nil }
func (n *NoopRecorder) RecentSnapshots(_ int) ([]*model.DaySnapshot, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                        { return nil }
