package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"DragonBonus/internal/collector"
	"DragonBonus/internal/model"
	"DragonBonus/internal/recorder"
)

var testLaunch = time.Date(2017, time.October, 31, 16, 0, 0, 0, time.UTC)

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (c *captureNotifier) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

func (c *captureNotifier) SendWithRetry(ctx context.Context, text string, _ int) error {
	return c.Send(ctx, text)
}

func newTestScheduler(t *testing.T, rec recorder.Recorder, now time.Time) (*Scheduler, *captureNotifier) {
	t.Helper()
	col := collector.NewCollector(collector.NewStaticFetcher(8.0, 6.5), testLaunch, 6.5, 0.3, 0.5)
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), col, n, rec)
	s.Now = func() time.Time { return now }
	return s, n
}

func TestRegister_InvalidCron(t *testing.T) {
	s, _ := newTestScheduler(t, recorder.NewNoopRecorder(), testLaunch)
	if err := s.Register("not a cron"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Register("55 59 15 * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDailyTask_RecordsAndComparesWithYesterday(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	// 2017-12-12 in Beijing.
	yesterday := &model.DaySnapshot{Date: "2017-12-12", Day: 42, Period: 1, BonusPerCoin: 0.5}
	if err := rec.RecordSnapshot(yesterday); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}

	now := testLaunch.AddDate(0, 0, 42).Add(time.Hour)
	s, n := newTestScheduler(t, rec, now)
	s.RunDailyNow()

	snap, err := rec.SnapshotByDate("2017-12-13")
	if err != nil || snap == nil {
		t.Fatalf("expected recorded snapshot, got %v, %v", snap, err)
	}
	if snap.Day != 43 {
		t.Errorf("expected day 43, got %d", snap.Day)
	}

	if len(n.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.sent))
	}
	if !strings.Contains(n.sent[0], "第 43 天") || !strings.Contains(n.sent[0], "昨日(2017-12-12)") {
		t.Errorf("unexpected report:\n%s", n.sent[0])
	}
}

func TestDailyTask_CollectFailureNotifies(t *testing.T) {
	s, n := newTestScheduler(t, recorder.NewNoopRecorder(), testLaunch.Add(-time.Hour))
	s.RunDailyNow()
	if len(n.sent) != 1 || !strings.Contains(n.sent[0], "❌") {
		t.Errorf("expected failure notification, got %v", n.sent)
	}
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t, recorder.NewNoopRecorder(), testLaunch.AddDate(0, 0, 42))

	tests := []struct {
		command string
		want    string
	}{
		{"/calc 43 365 8", "最后释放龙币数量: 18688000"},
		{"/calc 43 365 8", "平均每天每币分红: ￥0.208179"},
		{"/calc 365 43 8", "invalid input"},
		{"/calc 43 365", "需要 3 个参数"},
		{"/calc x 365 8", "起始天无效"},
		{"/today", "第 43 天"},
		{"", "可用命令"},
		{"/help", "可用命令"},
	}
	for _, tt := range tests {
		if got := s.HandleCommand(tt.command); !strings.Contains(got, tt.want) {
			t.Errorf("%q: expected reply containing %q, got:\n%s", tt.command, tt.want, got)
		}
	}
}

func TestHandleCommand_Forecast(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	s, _ := newTestScheduler(t, rec, testLaunch.AddDate(0, 0, 42))
	if got := s.HandleCommand("/forecast"); !strings.Contains(got, "no snapshots recorded") {
		t.Errorf("expected empty-history error, got:\n%s", got)
	}

	for _, snap := range []*model.DaySnapshot{
		{Date: "2017-12-10", Day: 41, Period: 1, Volume: 6e8},
		{Date: "2017-12-11", Day: 42, Period: 1, Volume: 10e8},
	} {
		if err := rec.RecordSnapshot(snap); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	got := s.HandleCommand("/forecast")
	for _, want := range []string{"基于近 2 日平均交易量", "起始天数: 43", "结束天数: 365", "平均每天交易量: 8亿", "平均每天每币分红: ￥0.208179"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in forecast:\n%s", want, got)
		}
	}
	if got := s.HandleCommand("/forecast 100"); !strings.Contains(got, "结束天数: 100") {
		t.Errorf("expected explicit end day, got:\n%s", got)
	}
}
