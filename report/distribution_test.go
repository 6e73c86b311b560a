package report

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelkit/curve"
)

func buildTable(t *testing.T) *curve.Table {
	t.Helper()
	tbl, err := curve.BuildTable(curve.DefaultConstraints())
	require.NoError(t, err)
	return tbl
}

func TestParseExpRange(t *testing.T) {
	lo, hi, err := ParseExpRange("100-199")
	require.NoError(t, err)
	assert.Equal(t, 100, lo)
	assert.Equal(t, 199, hi)

	lo, hi, err = ParseExpRange("50000")
	require.NoError(t, err)
	assert.Equal(t, 50000, lo)
	assert.Equal(t, 50000, hi)

	_, _, err = ParseExpRange("200-100")
	require.Error(t, err)

	_, _, err = ParseExpRange("abc")
	require.Error(t, err)
}

func TestLoadGroupStats(t *testing.T) {
	content := "exp_group,count\n0-9,120\n10-99,80\n25000,5\n"
	path := filepath.Join(t.TempDir(), "group_statistics.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	stats, err := LoadGroupStats(path)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, GroupStat{RangeLo: 0, RangeHi: 9, Count: 120}, stats[0])
	assert.Equal(t, GroupStat{RangeLo: 10, RangeHi: 99, Count: 80}, stats[1])
	assert.Equal(t, GroupStat{RangeLo: 25000, RangeHi: 25000, Count: 5}, stats[2])
}

func TestLoadGroupStatsRejectsBadRows(t *testing.T) {
	content := "exp_group,count\n0-9,not-a-number\n"
	path := filepath.Join(t.TempDir(), "group_statistics.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadGroupStats(path)
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	tbl := buildTable(t)
	stats := []GroupStat{
		{RangeLo: 0, RangeHi: 9, Count: 100},
		{RangeLo: 20000, RangeHi: 29998, Count: 50},
	}

	d, err := Analyze(stats, tbl)
	require.NoError(t, err)

	assert.Equal(t, 150, d.TotalUsers)
	require.Len(t, d.Levels, 2)

	lowLevel := tbl.LevelForExp(4)
	highLevel := tbl.LevelForExp(24999)
	assert.Equal(t, lowLevel, d.Levels[0].Level)
	assert.Equal(t, 100, d.Levels[0].Users)
	assert.InDelta(t, 66.67, d.Levels[0].Percentage, 0.001)
	assert.Equal(t, highLevel, d.Levels[1].Level)
	assert.Equal(t, 50, d.Levels[1].Users)
	assert.InDelta(t, 33.33, d.Levels[1].Percentage, 0.001)

	wantAvg := float64(lowLevel*100+highLevel*50) / 150
	assert.InDelta(t, wantAvg, d.AverageLevel, 1e-9)

	// Both groups resolve below the anchor level.
	assert.Equal(t, 40, d.AnchorLevel)
	assert.Equal(t, 150, d.UsersBelowAnchor)
	assert.InDelta(t, 100.0, d.PercentBelowAnchor, 0.001)
}

func TestAnalyzeEmpty(t *testing.T) {
	tbl := buildTable(t)
	_, err := Analyze(nil, tbl)
	require.Error(t, err)
	_, err = Analyze([]GroupStat{{RangeLo: 0, RangeHi: 9, Count: 0}}, tbl)
	require.Error(t, err)
}

func TestDistributionWriteCSV(t *testing.T) {
	tbl := buildTable(t)
	d, err := Analyze([]GroupStat{{RangeLo: 0, RangeHi: 9, Count: 10}}, tbl)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "level_distribution.csv")
	require.NoError(t, d.WriteCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "level,user_count,percentage", lines[0])
	assert.Equal(t, "1,10,100.00", lines[1])
}

func TestDistributionWriteReport(t *testing.T) {
	tbl := buildTable(t)
	d, err := Analyze([]GroupStat{
		{RangeLo: 0, RangeHi: 9, Count: 90},
		{RangeLo: 20000, RangeHi: 29998, Count: 10},
	}, tbl)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "distribution_report.txt")
	require.NoError(t, d.WriteReport(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total users: 100")
	assert.Contains(t, text, "Users below level 40: 100 (100.0%)")
	assert.Contains(t, text, "Level distribution:")
}

func TestLoadUserExp(t *testing.T) {
	content := "uid,exp\n1001,0\n1002, 25000\n"
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	users, err := LoadUserExp(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, UserExp{UID: 1001, Exp: 0}, users[0])
	assert.Equal(t, UserExp{UID: 1002, Exp: 25000}, users[1])

	_, err = LoadUserExp(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestWriteUserMigrationCSV(t *testing.T) {
	tbl := buildTable(t)
	users := []UserExp{
		{UID: 1, Exp: 0},
		{UID: 2, Exp: 5000},
		{UID: 3, Exp: 999999},
	}

	path := filepath.Join(t.TempDir(), "user_migration.csv")
	require.NoError(t, WriteUserMigrationCSV(path, users, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "uid,exp,old_level,new_level", lines[0])
	assert.Equal(t, "1,0,1,1", lines[1])

	// Legacy ladder: 5000/1000+1 = 6; new level from the table.
	wantNew := tbl.LevelForExp(5000)
	assert.Equal(t, "2,5000,6,"+strconv.Itoa(wantNew), lines[2])
	// Clamped at the top in both systems.
	assert.Equal(t, "3,999999,50,50", lines[3])
}
