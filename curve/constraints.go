package curve

import "fmt"

// Constraints calibrates the level curve: the closed level range, the
// experience required at the top level, and one interior anchor point the
// curve must pass through. Constraints are a plain value; callers pass them
// explicitly into every solve and build, there is no ambient configuration.
type Constraints struct {
	LevelMin    int `json:"level_min" yaml:"level_min" env:"LEVELKIT_CURVE_LEVEL_MIN"`
	LevelMax    int `json:"level_max" yaml:"level_max" env:"LEVELKIT_CURVE_LEVEL_MAX"`
	ExpCap      int `json:"exp_cap" yaml:"exp_cap" env:"LEVELKIT_CURVE_EXP_CAP"`
	AnchorExp   int `json:"anchor_exp" yaml:"anchor_exp" env:"LEVELKIT_CURVE_ANCHOR_EXP"`
	AnchorLevel int `json:"anchor_level" yaml:"anchor_level" env:"LEVELKIT_CURVE_ANCHOR_LEVEL"`
}

// DefaultConstraints returns the forum calibration: levels 1-50, cap at
// 50000 experience, anchored so that 25000 experience lands on level 40.
func DefaultConstraints() Constraints {
	return Constraints{
		LevelMin:    1,
		LevelMax:    50,
		ExpCap:      50000,
		AnchorExp:   25000,
		AnchorLevel: 40,
	}
}

// Validate checks that the constraints admit a well-posed solve. Every
// violation is reported as ErrDegenerateConstraints with detail.
func (c Constraints) Validate() error {
	if c.LevelMax <= c.LevelMin {
		return fmt.Errorf("%w: level_max %d must exceed level_min %d", ErrDegenerateConstraints, c.LevelMax, c.LevelMin)
	}
	if c.AnchorLevel <= c.LevelMin || c.AnchorLevel >= c.LevelMax {
		return fmt.Errorf("%w: anchor_level %d must lie strictly between %d and %d", ErrDegenerateConstraints, c.AnchorLevel, c.LevelMin, c.LevelMax)
	}
	if c.AnchorExp <= 0 {
		return fmt.Errorf("%w: anchor_exp %d must be positive", ErrDegenerateConstraints, c.AnchorExp)
	}
	if c.ExpCap <= c.AnchorExp {
		return fmt.Errorf("%w: exp_cap %d must exceed anchor_exp %d", ErrDegenerateConstraints, c.ExpCap, c.AnchorExp)
	}
	return nil
}
