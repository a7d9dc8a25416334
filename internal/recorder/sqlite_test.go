package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"DragonBonus/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_SnapshotRoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	taken := time.Date(2017, time.December, 12, 15, 59, 55, 0, time.UTC)
	snap := &model.DaySnapshot{
		Date: "2017-12-12", Day: 43, Period: 1,
		TodayRelease: 51200, TotalRelease: 2201600,
		Volume: 8e8, Income: 1.6e6, CostHigh: 104.1667, CostLow: 62.5,
		BonusPerCoin: 0.7267, TakenAt: taken,
	}
	if err := r.RecordSnapshot(snap); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}

	got, err := r.SnapshotByDate("2017-12-12")
	if err != nil {
		t.Fatalf("query snapshot: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.Day != 43 || got.TotalRelease != 2201600 || got.CostLow != 62.5 || !got.TakenAt.Equal(taken) {
		t.Errorf("unexpected snapshot: %+v", got)
	}
}

func TestSQLiteRecorder_SnapshotReplacedPerDate(t *testing.T) {
	r := openTestRecorder(t)

	first := &model.DaySnapshot{Date: "2018-01-01", Day: 63, Period: 1, Volume: 1}
	second := &model.DaySnapshot{Date: "2018-01-01", Day: 63, Period: 1, Volume: 2}
	if err := r.RecordSnapshot(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := r.RecordSnapshot(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	got, err := r.SnapshotByDate("2018-01-01")
	if err != nil {
		t.Fatalf("query snapshot: %v", err)
	}
	if got.Volume != 2 {
		t.Errorf("expected latest volume 2, got %v", got.Volume)
	}

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM daily_snapshots`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row, got %d", n)
	}
}

func TestSQLiteRecorder_MissingDate(t *testing.T) {
	r := openTestRecorder(t)
	got, err := r.SnapshotByDate("1999-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil snapshot, got %+v", got)
	}
}

func TestSQLiteRecorder_RecentSnapshots(t *testing.T) {
	r := openTestRecorder(t)
	for i, date := range []string{"2018-01-03", "2018-01-01", "2018-01-02"} {
		snap := &model.DaySnapshot{Date: date, Day: uint32(63 + i), Volume: float64(i)}
		if err := r.RecordSnapshot(snap); err != nil {
			t.Fatalf("record %s: %v", date, err)
		}
	}

	got, err := r.RecentSnapshots(2)
	if err != nil {
		t.Fatalf("query recent: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2018-01-02" || got[1].Date != "2018-01-03" {
		t.Errorf("expected [2018-01-02 2018-01-03], got %v", got)
	}
}

func TestSQLiteRecorder_RecordCalculation(t *testing.T) {
	r := openTestRecorder(t)
	res := &model.BonusResult{
		StartDay: 43, EndDay: 365, AvgVolume: 8,
		StartDayBonus: 31.25, TotalRelease: 18688000,
		TotalBonus: 67.24, DailyBonus: 0.208,
	}
	if err := r.RecordCalculation(res); err != nil {
		t.Fatalf("record calculation: %v", err)
	}

	var start, end uint32
	var bonus float64
	err := r.db.QueryRow(`SELECT start_day, end_day, total_bonus FROM bonus_calculations`).Scan(&start, &end, &bonus)
	if err != nil {
		t.Fatalf("query calculation: %v", err)
	}
	if start != 43 || end != 365 || bonus != 67.24 {
		t.Errorf("unexpected row: start=%d end=%d bonus=%v", start, end, bonus)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordSnapshot(&model.DaySnapshot{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if snap, err := r.SnapshotByDate("2018-01-01"); snap != nil || err != nil {
		t.Errorf("expected nil, nil; got %v, %v", snap, err)
	}
}
