package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DragonBonus/internal/calculator"
	"DragonBonus/internal/export"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"dtcalc", "-c", filepath.Join(t.TempDir(), "absent.yaml")}, args...))
	return buf.String(), err
}

func TestCalc_ReversedRange(t *testing.T) {
	_, err := run(t, "calc", "--start-day", "365", "--end-day", "43")
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculator.ErrInvalidInput), err.Error())
}

func TestCalc_DefaultAction(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "起始天数: 43\n")
	assert.Contains(t, out, "结束天数: 365\n")
	assert.Contains(t, out, "最后每个币总分红: ￥67.24185779192582\n")
}

func TestCalc_SubcommandFlags(t *testing.T) {
	out, err := run(t, "calc", "-s", "1", "-e", "1", "-a", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "起始天数: 1\n")
	assert.Contains(t, out, "结束天数: 1\n")
	assert.Contains(t, out, "最后释放龙币数量: 51200\n")
}

func TestCalc_RangeFlagsBeforeCommandRejected(t *testing.T) {
	_, err := run(t, "-s", "10", "calc")
	assert.Error(t, err)
}

func TestSchedule_WritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schedule.csv")
	_, err := run(t, "schedule", "-s", "43", "-e", "365", "-a", "8", "-o", out)
	require.NoError(t, err)

	rows, err := export.LoadScheduleCSV(out)
	require.NoError(t, err)
	require.Len(t, rows, 365-43+1)

	res, err := calculator.CalculateByVolume(8, 43, 365)
	require.NoError(t, err)
	assert.InDelta(t, res.TotalBonus, rows[len(rows)-1].CumulativeBonus, 1e-9)
}

func TestSchedule_RejectsBadVolume(t *testing.T) {
	for _, volume := range []string{"-8", "NaN", "+Inf"} {
		out := filepath.Join(t.TempDir(), "schedule.csv")
		_, err := run(t, "schedule", "-a", volume, "-o", out)
		require.Error(t, err, volume)
		assert.True(t, errors.Is(err, calculator.ErrInvalidInput), err.Error())

		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr), "no CSV should be written for volume %s", volume)
	}
}

func TestShow_Tail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	_, err := run(t, "schedule", "-s", "360", "-e", "370", "-o", path)
	require.NoError(t, err)

	out, err := run(t, "show", "--tail", "2", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "day,period,period_day,daily_release,total_release,day_bonus,cumulative_bonus", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "369,2,4,25600,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "370,2,5,25600,"), lines[2])
}

func TestShow_NoFile(t *testing.T) {
	_, err := run(t, "show")
	assert.Error(t, err)
}
