package curve

import (
	"fmt"
	"sort"
)

// Row is one level of the canonical table.
type Row struct {
	Level         int `json:"level"`
	CumulativeExp int `json:"cumulative_exp"`
	DeltaExp      int `json:"delta_exp"`
}

// Table is the canonical level/experience table: one row per level from
// LevelMin through LevelMax, strictly increasing cumulative experience,
// boundary rows pinned to zero and the cap. A table is built once from a
// single Constraints value and never mutated afterwards. Emitters read it
// and must not derive experience values on their own.
type Table struct {
	Constraints Constraints `json:"constraints"`
	Gamma       float64     `json:"gamma"`
	Rows        []Row       `json:"rows"`
}

// BuildOption adjusts table construction.
type BuildOption func(*buildConfig)

type buildConfig struct {
	anchorTolerance int
}

// WithAnchorTolerance relaxes the post-build anchor self-check by up to n
// levels. The default of zero demands the anchor hold exactly.
func WithAnchorTolerance(n int) BuildOption {
	return func(b *buildConfig) { b.anchorTolerance = n }
}

// BuildTable derives the canonical table from the constraints. The build is
// deterministic and all-or-nothing: either every row is populated and the
// anchor self-check passes, or an error is returned and no table exists.
func BuildTable(c Constraints, opts ...BuildOption) (*Table, error) {
	bc := &buildConfig{}
	for _, o := range opts {
		o(bc)
	}

	gamma, err := SolveShapeParameter(c)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, c.LevelMax-c.LevelMin+1)
	for lvl := c.LevelMin; lvl <= c.LevelMax; lvl++ {
		rows = append(rows, Row{Level: lvl, CumulativeExp: LevelToMinExp(lvl, c, gamma)})
	}

	// Pin the calibration boundaries. Transcendental evaluation is not
	// trusted to land on them exactly.
	rows[0].CumulativeExp = 0
	rows[len(rows)-1].CumulativeExp = c.ExpCap

	for i := 1; i < len(rows); i++ {
		if rows[i].CumulativeExp <= rows[i-1].CumulativeExp {
			// Rounding collision in the steep low-level region; the table
			// must never hold a non-positive delta.
			rows[i].CumulativeExp = rows[i-1].CumulativeExp + 1
		}
		rows[i].DeltaExp = rows[i].CumulativeExp - rows[i-1].CumulativeExp
	}

	// A cap too tight for the level span forces the repair chain past the
	// pinned final row. Such a table would disagree with its own cap.
	if last := rows[len(rows)-1].CumulativeExp; last != c.ExpCap {
		return nil, fmt.Errorf("%w: exp_cap %d leaves no room for %d strictly increasing thresholds", ErrCalibration, c.ExpCap, len(rows))
	}

	got, err := ExpToLevel(c.AnchorExp, c, gamma)
	if err != nil {
		return nil, err
	}
	if diff := got - c.AnchorLevel; diff < -bc.anchorTolerance || diff > bc.anchorTolerance {
		return nil, fmt.Errorf("%w: anchor experience %d resolves to level %d, want %d", ErrCalibration, c.AnchorExp, got, c.AnchorLevel)
	}

	return &Table{Constraints: c, Gamma: gamma, Rows: rows}, nil
}

// ExpCap returns the canonical experience cap: the cumulative experience of
// the final row. Emitters use this wherever the cap value is needed.
func (t *Table) ExpCap() int {
	return t.Rows[len(t.Rows)-1].CumulativeExp
}

// Levels returns the number of rows in the table.
func (t *Table) Levels() int {
	return len(t.Rows)
}

// RowAt returns the row for level, or false when level is outside the
// table.
func (t *Table) RowAt(level int) (Row, bool) {
	if level < t.Constraints.LevelMin || level > t.Constraints.LevelMax {
		return Row{}, false
	}
	return t.Rows[level-t.Constraints.LevelMin], true
}

// LevelForExp resolves exp against the table thresholds: the highest level
// whose cumulative experience does not exceed exp. Negative experience
// counts as zero. This is the lookup every emitter uses, so that all
// artifacts agree with the table exactly.
func (t *Table) LevelForExp(exp int) int {
	if exp < 0 {
		exp = 0
	}
	i := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].CumulativeExp > exp })
	if i == 0 {
		return t.Rows[0].Level
	}
	return t.Rows[i-1].Level
}
