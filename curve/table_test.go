package curve

import (
	"errors"
	"reflect"
	"testing"
)

func buildDefault(t *testing.T) *Table {
	t.Helper()
	tbl, err := BuildTable(DefaultConstraints())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tbl
}

func TestBuildTableShape(t *testing.T) {
	tbl := buildDefault(t)
	c := tbl.Constraints

	if got, want := tbl.Levels(), c.LevelMax-c.LevelMin+1; got != want {
		t.Fatalf("row count: got %d, want %d", got, want)
	}
	for i, row := range tbl.Rows {
		if row.Level != c.LevelMin+i {
			t.Fatalf("row %d: level %d breaks the contiguous sequence", i, row.Level)
		}
	}
}

func TestBuildTableMonotonic(t *testing.T) {
	tbl := buildDefault(t)
	for i := 1; i < len(tbl.Rows); i++ {
		if tbl.Rows[i].CumulativeExp <= tbl.Rows[i-1].CumulativeExp {
			t.Fatalf("cumulative exp not strictly increasing at level %d", tbl.Rows[i].Level)
		}
		if tbl.Rows[i].DeltaExp != tbl.Rows[i].CumulativeExp-tbl.Rows[i-1].CumulativeExp {
			t.Fatalf("delta mismatch at level %d", tbl.Rows[i].Level)
		}
	}
	if tbl.Rows[0].DeltaExp != 0 {
		t.Fatalf("first row delta should be 0, got %d", tbl.Rows[0].DeltaExp)
	}
}

func TestBuildTablePinnedBoundaries(t *testing.T) {
	tbl := buildDefault(t)
	if tbl.Rows[0].CumulativeExp != 0 {
		t.Fatalf("first row exp: got %d, want 0", tbl.Rows[0].CumulativeExp)
	}
	if tbl.ExpCap() != tbl.Constraints.ExpCap {
		t.Fatalf("last row exp: got %d, want %d", tbl.ExpCap(), tbl.Constraints.ExpCap)
	}
}

func TestBuildTableThresholdsReachTheirLevel(t *testing.T) {
	tbl := buildDefault(t)
	for _, row := range tbl.Rows {
		got, err := ExpToLevel(row.CumulativeExp, tbl.Constraints, tbl.Gamma)
		if err != nil {
			t.Fatalf("level %d: %v", row.Level, err)
		}
		if got < row.Level {
			t.Fatalf("threshold %d for level %d only reaches level %d", row.CumulativeExp, row.Level, got)
		}
	}
}

func TestBuildTableIdempotent(t *testing.T) {
	a := buildDefault(t)
	b := buildDefault(t)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two builds from identical constraints differ")
	}
}

func TestBuildTableRepairsCollisions(t *testing.T) {
	// A cap this close to the level span makes the low-level thresholds
	// collide after rounding, so the repair path has to run.
	c := Constraints{LevelMin: 1, LevelMax: 50, ExpCap: 100, AnchorExp: 50, AnchorLevel: 40}

	gamma, err := SolveShapeParameter(c)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	collided := false
	for lvl := c.LevelMin + 1; lvl <= c.LevelMax; lvl++ {
		if LevelToMinExp(lvl, c, gamma) <= LevelToMinExp(lvl-1, c, gamma) {
			collided = true
			break
		}
	}
	if !collided {
		t.Fatal("constraints produce no threshold collision; pick a tighter cap")
	}

	tbl, err := BuildTable(c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 1; i < len(tbl.Rows); i++ {
		if tbl.Rows[i].CumulativeExp <= tbl.Rows[i-1].CumulativeExp {
			t.Fatalf("cumulative exp not strictly increasing at level %d after repair", tbl.Rows[i].Level)
		}
		if tbl.Rows[i].DeltaExp != tbl.Rows[i].CumulativeExp-tbl.Rows[i-1].CumulativeExp {
			t.Fatalf("delta mismatch at level %d after repair", tbl.Rows[i].Level)
		}
	}
	if tbl.ExpCap() != c.ExpCap {
		t.Fatalf("repaired table cap: got %d, want %d", tbl.ExpCap(), c.ExpCap)
	}
}

func TestBuildTableRejectsCapTooTightForSpan(t *testing.T) {
	// Valid by the constraint checks, but 30 experience cannot hold 50
	// strictly increasing thresholds; the repair chain would run past the
	// pinned cap.
	c := Constraints{LevelMin: 1, LevelMax: 50, ExpCap: 30, AnchorExp: 15, AnchorLevel: 40}
	if err := c.Validate(); err != nil {
		t.Fatalf("constraints should pass validation: %v", err)
	}
	if _, err := BuildTable(c); !errors.Is(err, ErrCalibration) {
		t.Fatalf("expected ErrCalibration, got %v", err)
	}
}

func TestBuildTableDegenerateConstraints(t *testing.T) {
	c := DefaultConstraints()
	c.AnchorLevel = c.LevelMax
	if _, err := BuildTable(c); !errors.Is(err, ErrDegenerateConstraints) {
		t.Fatalf("expected ErrDegenerateConstraints, got %v", err)
	}
}

func TestTableRowAt(t *testing.T) {
	tbl := buildDefault(t)

	row, ok := tbl.RowAt(40)
	if !ok || row.Level != 40 {
		t.Fatalf("row at 40: %+v ok=%v", row, ok)
	}
	if _, ok := tbl.RowAt(0); ok {
		t.Fatal("row below range should not exist")
	}
	if _, ok := tbl.RowAt(51); ok {
		t.Fatal("row above range should not exist")
	}
}

func TestTableLevelForExp(t *testing.T) {
	tbl := buildDefault(t)

	for _, row := range tbl.Rows {
		if got := tbl.LevelForExp(row.CumulativeExp); got != row.Level {
			t.Fatalf("exp %d: got level %d, want %d", row.CumulativeExp, got, row.Level)
		}
	}
	if got := tbl.LevelForExp(-5); got != tbl.Constraints.LevelMin {
		t.Fatalf("negative exp: got level %d", got)
	}
	if got := tbl.LevelForExp(tbl.ExpCap() * 10); got != tbl.Constraints.LevelMax {
		t.Fatalf("exp above cap: got level %d", got)
	}
	// Just below a threshold resolves to the previous level.
	row, _ := tbl.RowAt(40)
	if got := tbl.LevelForExp(row.CumulativeExp - 1); got != 39 {
		t.Fatalf("exp just below level 40 threshold: got level %d", got)
	}
}
