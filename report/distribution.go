package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"levelkit/curve"
)

// GroupStat is one row of the exported experience grouping: a closed
// experience range and the number of users inside it.
type GroupStat struct {
	RangeLo int
	RangeHi int
	Count   int
}

// LevelCount is the number of users resolved to one level.
type LevelCount struct {
	Level      int
	Users      int
	Percentage float64
}

// Distribution is the level distribution derived from grouped experience
// statistics. Levels are ordered ascending; only levels with users appear.
type Distribution struct {
	Levels             []LevelCount
	TotalUsers         int
	AverageLevel       float64
	AnchorLevel        int
	UsersBelowAnchor   int
	PercentBelowAnchor float64
}

// LoadGroupStats reads a group statistics CSV with an exp_group,count
// header. Ranges are written "lo-hi"; a bare number denotes a single
// experience value.
func LoadGroupStats(path string) ([]GroupStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open group statistics: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read group statistics %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("group statistics %s has no data rows", path)
	}

	stats := make([]GroupStat, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("group statistics %s: row %d has %d columns, want 2", path, i+2, len(rec))
		}
		lo, hi, err := ParseExpRange(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("group statistics %s: row %d: %w", path, i+2, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("group statistics %s: row %d: bad count: %w", path, i+2, err)
		}
		stats = append(stats, GroupStat{RangeLo: lo, RangeHi: hi, Count: count})
	}
	return stats, nil
}

// ParseExpRange parses an experience range such as "100-199". A bare
// number is treated as a single-value range.
func ParseExpRange(s string) (lo, hi int, err error) {
	if before, after, found := strings.Cut(s, "-"); found {
		lo, err = strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return 0, 0, fmt.Errorf("bad experience range %q", s)
		}
		hi, err = strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return 0, 0, fmt.Errorf("bad experience range %q", s)
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("inverted experience range %q", s)
		}
		return lo, hi, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("bad experience range %q", s)
	}
	return v, v, nil
}

// Analyze resolves each group's range midpoint to a level through the
// canonical table and aggregates user counts per level. The table is the
// single source of level thresholds here; nothing is recomputed from the
// curve.
func Analyze(stats []GroupStat, tbl *curve.Table) (*Distribution, error) {
	if len(stats) == 0 {
		return nil, errors.New("no group statistics to analyze")
	}

	counts := make(map[int]int)
	total := 0
	for _, s := range stats {
		mid := (s.RangeLo + s.RangeHi) / 2
		counts[tbl.LevelForExp(mid)] += s.Count
		total += s.Count
	}
	if total == 0 {
		return nil, errors.New("group statistics contain no users")
	}

	levels := make([]int, 0, len(counts))
	for lvl := range counts {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	d := &Distribution{
		TotalUsers:  total,
		AnchorLevel: tbl.Constraints.AnchorLevel,
	}
	weighted := 0
	for _, lvl := range levels {
		n := counts[lvl]
		weighted += lvl * n
		d.Levels = append(d.Levels, LevelCount{
			Level:      lvl,
			Users:      n,
			Percentage: round2(float64(n) / float64(total) * 100),
		})
		if lvl < d.AnchorLevel {
			d.UsersBelowAnchor += n
		}
	}
	d.AverageLevel = float64(weighted) / float64(total)
	d.PercentBelowAnchor = round2(float64(d.UsersBelowAnchor) / float64(total) * 100)
	return d, nil
}

// WriteCSV writes the per-level distribution as level,user_count,percentage.
func (d *Distribution) WriteCSV(path string) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"level", "user_count", "percentage"}); err != nil {
		return err
	}
	for _, lc := range d.Levels {
		rec := []string{
			strconv.Itoa(lc.Level),
			strconv.Itoa(lc.Users),
			strconv.FormatFloat(lc.Percentage, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(sb.String()))
}

// WriteReport writes the human-readable distribution summary.
func (d *Distribution) WriteReport(path string) error {
	var sb strings.Builder
	sb.WriteString("=== Forum User Level Distribution Report ===\n\n")
	fmt.Fprintf(&sb, "Total users: %d\n", d.TotalUsers)
	fmt.Fprintf(&sb, "Average level: %.2f\n", d.AverageLevel)
	fmt.Fprintf(&sb, "Users below level %d: %d (%.1f%%)\n\n", d.AnchorLevel, d.UsersBelowAnchor, d.PercentBelowAnchor)

	sb.WriteString("Level distribution:\n")
	for _, lc := range d.Levels {
		fmt.Fprintf(&sb, "level %2d: %10d users (%5.2f%%)\n", lc.Level, lc.Users, lc.Percentage)
	}
	return writeFileAtomic(path, []byte(sb.String()))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
