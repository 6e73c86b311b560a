package curve

import (
	"fmt"
	"math"
)

// levelEpsilon absorbs transcendental rounding when the curve lands exactly
// on an integer level in exact arithmetic, as it does at the anchor point
// and at the cap. Without the nudge, floor could place those one level
// short.
const levelEpsilon = 1e-9

// ExpToLevel maps accumulated experience to a level under the solved curve.
// Zero experience maps to exactly LevelMin, experience above the cap
// saturates at LevelMax. Negative experience is rejected with
// ErrInvalidExperience.
func ExpToLevel(exp int, c Constraints, gamma float64) (int, error) {
	if exp < 0 {
		return 0, fmt.Errorf("%w: experience %d is negative", ErrInvalidExperience, exp)
	}

	base := math.Log(float64(exp)+1) / math.Log(float64(c.ExpCap)+1)
	raw := float64(c.LevelMin) + float64(c.LevelMax-c.LevelMin)*math.Pow(base, gamma)
	if raw < float64(c.LevelMin) {
		raw = float64(c.LevelMin)
	}
	if raw > float64(c.LevelMax) {
		raw = float64(c.LevelMax)
	}
	return int(math.Floor(raw + levelEpsilon)), nil
}

// LevelToMinExp returns the smallest non-negative experience whose forward
// evaluation reaches level. Levels at or below LevelMin cost nothing and
// the top level costs exactly the cap. The value comes from inverting the
// closed form, not from search; a single deterministic bump covers the case
// where rounding through Pow leaves the ceiling one short of the threshold.
func LevelToMinExp(level int, c Constraints, gamma float64) int {
	if level <= c.LevelMin {
		return 0
	}
	if level >= c.LevelMax {
		return c.ExpCap
	}

	scaled := float64(level-c.LevelMin) / float64(c.LevelMax-c.LevelMin)
	base := math.Pow(scaled, 1/gamma)
	exp := int(math.Ceil(math.Exp(base*math.Log(float64(c.ExpCap)+1)) - 1))
	if exp < 0 {
		exp = 0
	}
	if got, err := ExpToLevel(exp, c, gamma); err == nil && got < level {
		exp++
	}
	return exp
}

// LevelRange reports the experience interval covered by level. bounded is
// false at LevelMax, whose interval is open above.
func LevelRange(level int, c Constraints, gamma float64) (minExp, maxExp int, bounded bool) {
	minExp = LevelToMinExp(level, c, gamma)
	if level >= c.LevelMax {
		return minExp, 0, false
	}
	return minExp, LevelToMinExp(level+1, c, gamma) - 1, true
}
