package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"DragonBonus/internal/calculator"
	"DragonBonus/internal/collector"
	"DragonBonus/internal/model"
	"DragonBonus/internal/notifier"
	"DragonBonus/internal/recorder"

	"github.com/robfig/cron/v3"
)

// ForecastWindow is how many recorded days feed the /forecast average volume.
const ForecastWindow = 30

// Scheduler manages the daily snapshot task and bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	// Now is overridable for tests.
	Now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// Register adds the daily snapshot task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily snapshot")
	snap, err := s.Collector.Collect(s.Ctx, s.Now())
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ 今日数据统计失败: %v", err))
		return
	}

	if err := s.Recorder.RecordSnapshot(snap); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}
	s.trySend(notifier.FormatSnapshot(snap, s.yesterday(snap)))
	log.Printf("[INFO] day %d snapshot written (%s)", snap.Day, snap.Date)
}

// Today collects a fresh snapshot without recording it.
func (s *Scheduler) Today() (*model.DaySnapshot, error) {
	return s.Collector.Collect(s.Ctx, s.Now())
}

func (s *Scheduler) yesterday(snap *model.DaySnapshot) *model.DaySnapshot {
	date, err := time.ParseInLocation("2006-01-02", snap.Date, collector.BeijingTime)
	if err != nil {
		return nil
	}
	prev, err := s.Recorder.SnapshotByDate(date.AddDate(0, 0, -1).Format("2006-01-02"))
	if err != nil {
		log.Printf("[WARN] load yesterday snapshot: %v", err)
		return nil
	}
	return prev
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/today", "今日分红":
		snap, err := s.Today()
		if err != nil {
			return fmt.Sprintf("❌ 统计失败: %v", err)
		}
		return notifier.FormatSnapshot(snap, s.yesterday(snap))
	case "/calc", "计算分红":
		res, err := s.calc(fields[1:])
		if err != nil {
			return fmt.Sprintf("❌ %v\n\n%s", err, notifier.FormatHelp())
		}
		return notifier.FormatSummary(res)
	case "/forecast", "预测分红":
		res, n, err := s.forecast(fields[1:])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("基于近 %d 日平均交易量:\n%s", n, notifier.FormatSummary(res))
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) calc(args []string) (*model.BonusResult, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("需要 3 个参数")
	}
	start, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("起始天无效: %w", err)
	}
	end, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("结束天无效: %w", err)
	}
	volume, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return nil, fmt.Errorf("交易量无效: %w", err)
	}

	res, err := calculator.CalculateByVolume(volume, uint32(start), uint32(end))
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.RecordCalculation(res); err != nil {
		log.Printf("[ERROR] record calculation: %v", err)
	}
	return res, nil
}

// forecast projects the bonus from today to endDay (default: end of the
// current period) using the average volume of recently recorded days.
func (s *Scheduler) forecast(args []string) (*model.BonusResult, int, error) {
	today, err := calculator.DayNumber(s.Collector.Launch, s.Now())
	if err != nil {
		return nil, 0, err
	}
	period, err := calculator.Period(today)
	if err != nil {
		return nil, 0, err
	}
	end := period * calculator.DaysPerPeriod
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("结束天无效: %w", err)
		}
		end = uint32(v)
	}

	snaps, err := s.Recorder.RecentSnapshots(ForecastWindow)
	if err != nil {
		return nil, 0, err
	}
	avg, err := calculator.AverageVolume(snaps, ForecastWindow)
	if err != nil {
		return nil, 0, err
	}
	res, err := calculator.CalculateByVolume(avg, today, end)
	if err != nil {
		return nil, 0, err
	}
	return res, len(snaps), nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
