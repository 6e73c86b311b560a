package curve

import (
	"errors"
	"testing"
)

func solved(t *testing.T) (Constraints, float64) {
	t.Helper()
	c := DefaultConstraints()
	gamma, err := SolveShapeParameter(c)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return c, gamma
}

func TestExpToLevelBoundaries(t *testing.T) {
	c, gamma := solved(t)

	lvl, err := ExpToLevel(0, c, gamma)
	if err != nil || lvl != c.LevelMin {
		t.Fatalf("exp 0: level=%d err=%v", lvl, err)
	}
	lvl, err = ExpToLevel(c.ExpCap, c, gamma)
	if err != nil || lvl != c.LevelMax {
		t.Fatalf("exp at cap: level=%d err=%v", lvl, err)
	}
	// Saturation far above the cap.
	lvl, err = ExpToLevel(c.ExpCap*10, c, gamma)
	if err != nil || lvl != c.LevelMax {
		t.Fatalf("exp above cap: level=%d err=%v", lvl, err)
	}
}

func TestExpToLevelAnchor(t *testing.T) {
	c, gamma := solved(t)
	lvl, err := ExpToLevel(c.AnchorExp, c, gamma)
	if err != nil {
		t.Fatalf("exp at anchor: %v", err)
	}
	if lvl != c.AnchorLevel {
		t.Fatalf("anchor exp %d resolved to level %d, want %d", c.AnchorExp, lvl, c.AnchorLevel)
	}
}

func TestExpToLevelRejectsNegative(t *testing.T) {
	c, gamma := solved(t)
	if _, err := ExpToLevel(-1, c, gamma); !errors.Is(err, ErrInvalidExperience) {
		t.Fatalf("expected ErrInvalidExperience, got %v", err)
	}
}

func TestExpToLevelMonotonic(t *testing.T) {
	c, gamma := solved(t)
	prev := 0
	for exp := 0; exp <= c.ExpCap; exp += 250 {
		lvl, err := ExpToLevel(exp, c, gamma)
		if err != nil {
			t.Fatalf("exp %d: %v", exp, err)
		}
		if lvl < prev {
			t.Fatalf("level decreased from %d to %d at exp %d", prev, lvl, exp)
		}
		prev = lvl
	}
}

func TestLevelToMinExpBoundaries(t *testing.T) {
	c, gamma := solved(t)
	if got := LevelToMinExp(c.LevelMin, c, gamma); got != 0 {
		t.Fatalf("min level threshold: got %d", got)
	}
	if got := LevelToMinExp(c.LevelMax, c, gamma); got != c.ExpCap {
		t.Fatalf("max level threshold: got %d, want %d", got, c.ExpCap)
	}
}

func TestLevelToMinExpReachesItsLevel(t *testing.T) {
	c, gamma := solved(t)
	for lvl := c.LevelMin; lvl <= c.LevelMax; lvl++ {
		exp := LevelToMinExp(lvl, c, gamma)
		got, err := ExpToLevel(exp, c, gamma)
		if err != nil {
			t.Fatalf("level %d at exp %d: %v", lvl, exp, err)
		}
		if got < lvl {
			t.Fatalf("threshold exp %d for level %d only reaches level %d", exp, lvl, got)
		}
	}
}

func TestLevelRange(t *testing.T) {
	c, gamma := solved(t)

	minExp, maxExp, bounded := LevelRange(10, c, gamma)
	if !bounded {
		t.Fatal("level 10 range should be bounded")
	}
	if minExp != LevelToMinExp(10, c, gamma) || maxExp != LevelToMinExp(11, c, gamma)-1 {
		t.Fatalf("unexpected range for level 10: [%d, %d]", minExp, maxExp)
	}

	minExp, _, bounded = LevelRange(c.LevelMax, c, gamma)
	if bounded {
		t.Fatal("top level range should be open above")
	}
	if minExp != c.ExpCap {
		t.Fatalf("top level min exp: got %d, want %d", minExp, c.ExpCap)
	}
}
