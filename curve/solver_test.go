package curve

import (
	"errors"
	"math"
	"testing"
)

func TestSolveShapeParameterDefaultCalibration(t *testing.T) {
	gamma, err := SolveShapeParameter(DefaultConstraints())
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(gamma-3.45) > 0.01 {
		t.Fatalf("expected gamma near 3.45, got %g", gamma)
	}
}

func TestSolveShapeParameterIsPure(t *testing.T) {
	c := DefaultConstraints()
	a, err := SolveShapeParameter(c)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	b, err := SolveShapeParameter(c)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if a != b {
		t.Fatalf("repeated solves differ: %g vs %g", a, b)
	}
}

func TestSolveShapeParameterDegenerate(t *testing.T) {
	cases := map[string]Constraints{
		"anchor level at cap": {LevelMin: 1, LevelMax: 50, ExpCap: 50000, AnchorExp: 25000, AnchorLevel: 50},
		"anchor level at min": {LevelMin: 1, LevelMax: 50, ExpCap: 50000, AnchorExp: 25000, AnchorLevel: 1},
		"zero anchor exp":     {LevelMin: 1, LevelMax: 50, ExpCap: 50000, AnchorExp: 0, AnchorLevel: 40},
		"negative anchor exp": {LevelMin: 1, LevelMax: 50, ExpCap: 50000, AnchorExp: -10, AnchorLevel: 40},
		"cap below anchor":    {LevelMin: 1, LevelMax: 50, ExpCap: 20000, AnchorExp: 25000, AnchorLevel: 40},
		"cap equals anchor":   {LevelMin: 1, LevelMax: 50, ExpCap: 25000, AnchorExp: 25000, AnchorLevel: 40},
		"empty level range":   {LevelMin: 50, LevelMax: 50, ExpCap: 50000, AnchorExp: 25000, AnchorLevel: 40},
	}
	for name, c := range cases {
		if _, err := SolveShapeParameter(c); !errors.Is(err, ErrDegenerateConstraints) {
			t.Fatalf("%s: expected ErrDegenerateConstraints, got %v", name, err)
		}
	}
}
