package curve

import "errors"

var (
	// ErrDegenerateConstraints reports constraints under which the
	// closed-form solve is undefined: an anchor outside the open level
	// interval, a cap at or below the anchor, or log ratios outside (0,1).
	ErrDegenerateConstraints = errors.New("degenerate curve constraints")

	// ErrInvalidExperience reports negative experience input.
	ErrInvalidExperience = errors.New("invalid experience")

	// ErrCalibration reports a built table that fails its own anchor
	// self-check. It signals a logic or tolerance bug and is never
	// swallowed.
	ErrCalibration = errors.New("table calibration check failed")
)
