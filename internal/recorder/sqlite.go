package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"DragonBonus/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_snapshots (
			date           TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			day            INTEGER NOT NULL,
			period         INTEGER NOT NULL,
			today_release  REAL,
			total_release  REAL,
			volume         REAL,
			income         REAL,
			cost_high      REAL,
			cost_low       REAL,
			bonus_per_coin REAL
		)`,

		`CREATE TABLE IF NOT EXISTS bonus_calculations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			start_day       INTEGER NOT NULL,
			end_day         INTEGER NOT NULL,
			avg_volume      REAL,
			start_day_bonus REAL,
			total_release   REAL,
			total_bonus     REAL,
			daily_bonus     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calc_ts ON bonus_calculations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot stores a day's snapshot, replacing any earlier one for the same date.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.DaySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.TakenAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT OR REPLACE INTO daily_snapshots
		(date, timestamp, day, period, today_release, total_release,
		 volume, income, cost_high, cost_low, bonus_per_coin)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		snap.Date, ts.Unix(), snap.Day, snap.Period,
		snap.TodayRelease, snap.TotalRelease,
		snap.Volume, snap.Income, snap.CostHigh, snap.CostLow, snap.BonusPerCoin,
	)
	return err
}

func (r *SQLiteRecorder) RecordCalculation(res *model.BonusResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO bonus_calculations
		(timestamp, start_day, end_day, avg_volume, start_day_bonus,
		 total_release, total_bonus, daily_bonus)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.StartDay, res.EndDay, res.AvgVolume, res.StartDayBonus,
		res.TotalRelease, res.TotalBonus, res.DailyBonus,
	)
	return err
}

const snapshotColumns = `date, timestamp, day, period, today_release, total_release,
	volume, income, cost_high, cost_low, bonus_per_coin`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row rowScanner) (*model.DaySnapshot, error) {
	var (
		snap model.DaySnapshot
		ts   int64
	)
	err := row.Scan(
		&snap.Date, &ts, &snap.Day, &snap.Period, &snap.TodayRelease, &snap.TotalRelease,
		&snap.Volume, &snap.Income, &snap.CostHigh, &snap.CostLow, &snap.BonusPerCoin,
	)
	if err != nil {
		return nil, err
	}
	snap.TakenAt = time.Unix(ts, 0)
	return &snap, nil
}

func (r *SQLiteRecorder) SnapshotByDate(date string) (*model.DaySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := scanSnapshot(r.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM daily_snapshots WHERE date = ?`, date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", date, err)
	}
	return snap, nil
}

func (r *SQLiteRecorder) RecentSnapshots(limit int) ([]*model.DaySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(
		`SELECT `+snapshotColumns+` FROM daily_snapshots ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*model.DaySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Oldest first.
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	return snaps, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
