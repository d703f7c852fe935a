package solver

import (
	"errors"
	"time"

	"landLotPlanner/models"
)

// Status reports how good the returned layout is.
type Status string

const (
	// StatusOptimal means the yield reached the analytic upper bound.
	StatusOptimal Status = "optimal"
	// StatusFeasible means every constraint holds but optimality was not
	// proven within the budget.
	StatusFeasible Status = "feasible"
)

// Default search parameters used when Options fields are zero.
const (
	DefaultTimeLimit = 5 * time.Second
	DefaultRestarts  = 3

	// deadlineCheckMask gates how often the hot loop reads the clock.
	deadlineCheckMask = 0xFF
	// stallLimit ends a restart after this many non-improving iterations.
	stallLimit = 4000
)

// Options tunes a Solve call. The zero value requests the defaults.
type Options struct {
	// TimeLimit is the wall-clock budget. 0 means DefaultTimeLimit;
	// negative disables the clock entirely (MaxIters must then be set).
	TimeLimit time.Duration

	// MaxIters caps the total number of search iterations across restarts.
	// 0 means unbounded (the budget alone stops the search). Pinning
	// MaxIters with a fixed Seed makes Solve fully deterministic.
	MaxIters int

	// Restarts is the number of additional seeded search passes after the
	// first. 0 means DefaultRestarts; negative means none.
	Restarts int

	// Seed drives every random choice. 0 selects a fixed default stream,
	// so the zero Options are still reproducible.
	Seed int64

	// Progress, when set, is invoked from the search loop with the current
	// iteration and best yield. It is called sparsely, never per iteration.
	Progress func(iter, bestYield int)
}

// Result is the outcome of a Solve call.
type Result struct {
	Status Status
	Layout models.Layout
	// Yield is the combined building area of Layout.
	Yield int
	// Bound is the analytic yield upper bound for the problem.
	Bound int
	// Iters is the number of search iterations performed.
	Iters int
	// Elapsed is the wall-clock time spent solving.
	Elapsed time.Duration
}

// Validation and feasibility sentinels. CheckLayout and Validate return
// these (possibly wrapped with positional detail via fmt.Errorf("%w")).
var (
	ErrNilProblem     = errors.New("solver: nil problem")
	ErrLotSize        = errors.New("solver: lot dimensions must be positive")
	ErrEntityCount    = errors.New("solver: entity counts out of range")
	ErrParkingPct     = errors.New("solver: parking percentage out of range")
	ErrZoneKind       = errors.New("solver: unknown zone kind")
	ErrZoneBounds     = errors.New("solver: zone outside lot or empty")
	ErrZoneOverlap    = errors.New("solver: zones overlap")
	ErrLayoutShape    = errors.New("solver: layout slot count mismatch")
	ErrNegativeExtent = errors.New("solver: placement has negative extent")
	ErrOutOfBounds    = errors.New("solver: placement outside lot")
	ErrOverlap        = errors.New("solver: placements overlap")
	ErrBlockedZone    = errors.New("solver: placement overlaps blocked zone")
	ErrNoBuildZone    = errors.New("solver: building or park overlaps no-build zone")
	ErrParkTooSmall   = errors.New("solver: park smaller than largest building")
	ErrParkingRatio   = errors.New("solver: parking area below required ratio")
	ErrNoBudget       = errors.New("solver: no time budget and no iteration cap")
)
