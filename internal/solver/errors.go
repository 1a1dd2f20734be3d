package solver

import "errors"

// Sentinel errors for solver runtime failures. Runtime failures flip the
// solver into the failed state; Solve returns the matching error but does
// not panic.
var (
	// ErrBudgetExhausted is returned when the iteration count reaches the
	// solver-wide maximum before every connection is routed.
	ErrBudgetExhausted = errors.New("solver: iteration budget exhausted")

	// ErrUnreachableGoal is returned when the priority queue empties
	// before the end region is reached.
	ErrUnreachableGoal = errors.New("solver: goal unreachable")

	// ErrInternalInvariant flags a broken solver invariant, such as a
	// discontinuous candidate chain at commit time.
	ErrInternalInvariant = errors.New("solver: internal invariant violated")

	// ErrInvalidOptions is returned by New for unusable options.
	ErrInvalidOptions = errors.New("solver: invalid options")
)
