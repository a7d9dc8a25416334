package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"DragonBonus/internal/calculator"
	"DragonBonus/internal/collector"
	"DragonBonus/internal/config"
	"DragonBonus/internal/export"
	"DragonBonus/internal/notifier"
	"DragonBonus/internal/recorder"
	"DragonBonus/internal/scheduler"
)

func dayRange(c *cli.Context) (start, end uint32, err error) {
	s, e := c.Uint(flagStartDay), c.Uint(flagEndDay)
	if s > math.MaxUint32 || e > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: day out of range", calculator.ErrInvalidInput)
	}
	return uint32(s), uint32(e), nil
}

func calcCmd(c *cli.Context) error {
	start, end, err := dayRange(c)
	if err != nil {
		return err
	}
	return printSummary(c.App.Writer, c.Float64(flagAvgVolume), start, end)
}

// defaultCmd runs the calculation with the built-in range when no command is given.
func defaultCmd(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}
	return printSummary(c.App.Writer, defaultAvgVolume, defaultStartDay, defaultEndDay)
}

func printSummary(w io.Writer, avgVolume float64, start, end uint32) error {
	res, err := calculator.CalculateByVolume(avgVolume, start, end)
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}
	_, err = fmt.Fprint(w, notifier.FormatSummary(res))
	return err
}

func scheduleCmd(c *cli.Context) error {
	start, end, err := dayRange(c)
	if err != nil {
		return err
	}
	rows, err := calculator.Schedule(c.Float64(flagAvgVolume), start, end)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	out := c.String(flagOut)
	if out == "" {
		if cfg, err := config.Load(c.String(flagConfig)); err == nil {
			out = cfg.Report.CSVPath
		}
	}
	if out == "" {
		return export.WriteScheduleCSV(c.App.Writer, rows)
	}
	if err := export.SaveScheduleCSV(out, rows); err != nil {
		return err
	}
	log.Printf("[INFO] %d schedule rows written to %s", len(rows), out)
	return nil
}

func showCmd(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		if cfg, err := config.Load(c.String(flagConfig)); err == nil {
			path = cfg.Report.CSVPath
		}
	}
	if path == "" {
		return fmt.Errorf("no schedule file given and report.csv_path is not set")
	}

	rows, err := export.LoadScheduleCSV(path)
	if err != nil {
		return err
	}
	if tail := int(c.Uint(flagTail)); tail > 0 && tail < len(rows) {
		rows = rows[len(rows)-tail:]
	}
	return export.WriteScheduleCSV(c.App.Writer, rows)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newCollector(cfg *config.Config) (*collector.Collector, error) {
	launch, err := cfg.Launch()
	if err != nil {
		return nil, err
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewDragonexFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.CoinIDs, cfg.Proxy)
	} else {
		fetcher = collector.NewStaticFetcher(cfg.Economy.AvgVolume, cfg.Economy.ExchangeRate)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	return collector.NewCollector(fetcher, launch, cfg.Economy.ExchangeRate,
		cfg.Economy.CostHighRate, cfg.Economy.CostLowRate), nil
}

func todayCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	col, err := newCollector(cfg)
	if err != nil {
		return err
	}
	snap, err := col.Collect(c.Context, time.Now())
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	fmt.Fprint(c.App.Writer, notifier.FormatSnapshot(snap, nil))
	return nil
}

func serveCmd(c *cli.Context) error {
	log.Println("[INFO] DragonBonus starting...")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	col, err := newCollector(cfg)
	if err != nil {
		return err
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Printf("[WARN] create database dir: %v", err)
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Init notifier
	var n notifier.Notifier = notifier.NewNoopNotifier()
	var tn *notifier.TelegramNotifier
	if cfg.NotifyEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, reports are only logged")
	}

	sched := scheduler.NewScheduler(ctx, col, n, rec)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] DragonBonus is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	cancel()
	log.Println("[INFO] DragonBonus stopped")
	return nil
}
