package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"DragonBonus/internal/model"
)

// WriteScheduleCSV writes the bonus engine trajectory as CSV with a header row.
func WriteScheduleCSV(w io.Writer, rows []model.DayRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	return nil
}

// SaveScheduleCSV writes rows to path, creating parent directories and truncating any existing file.
func SaveScheduleCSV(path string, rows []model.DayRow) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	return nil
}

// LoadScheduleCSV reads rows previously written by SaveScheduleCSV.
func LoadScheduleCSV(path string) ([]model.DayRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows := make([]model.DayRow, 0)
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return rows, nil
}
