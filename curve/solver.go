package curve

import (
	"fmt"
	"math"
)

// SolveShapeParameter solves the curve exponent gamma from the anchor
// constraints. The curve family is fixed:
//
//	level = levelMin + span * (ln(exp+1) / ln(expCap+1))^gamma
//
// Requiring the curve to pass through the anchor point gives t = r^gamma,
// with t the normalized anchor level and r the normalized log-experience
// ratio, hence gamma = ln(t)/ln(r). The relation is algebraically
// invertible, so no iterative solve is needed; the function is pure and
// returns identical results for identical constraints.
func SolveShapeParameter(c Constraints) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	t := float64(c.AnchorLevel-c.LevelMin) / float64(c.LevelMax-c.LevelMin)
	r := math.Log(float64(c.AnchorExp)+1) / math.Log(float64(c.ExpCap)+1)
	if t <= 0 || t >= 1 {
		return 0, fmt.Errorf("%w: normalized anchor level %g outside (0,1)", ErrDegenerateConstraints, t)
	}
	if r <= 0 || r >= 1 {
		return 0, fmt.Errorf("%w: normalized experience ratio %g outside (0,1)", ErrDegenerateConstraints, r)
	}

	gamma := math.Log(t) / math.Log(r)
	// Monotonicity of the curve requires a positive finite exponent; a
	// pathological anchor can still produce one outside that range.
	if gamma <= 0 || math.IsInf(gamma, 0) || math.IsNaN(gamma) {
		return 0, fmt.Errorf("%w: solved exponent %g is not positive and finite", ErrDegenerateConstraints, gamma)
	}
	return gamma, nil
}
