package solver

import (
	"context"
	"time"

	"landLotPlanner/models"
)

// Solve finds a feasible layout maximizing the yield of p.
//
// The search runs a deterministic constructive pass, then up to 1+Restarts
// seeded hill-climbing passes from that layout, each on an independent RNG
// stream derived from opts.Seed. It stops early when the yield reaches the
// analytic upper bound, the wall-clock budget expires, the iteration cap is
// hit, or ctx is cancelled; the best layout seen so far is returned in every
// case. The only errors are validation failures and ErrNoBudget.
func Solve(ctx context.Context, p *models.Problem, opts Options) (Result, error) {
	start := time.Now()
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	timeLimit := opts.TimeLimit
	if timeLimit == 0 {
		timeLimit = DefaultTimeLimit
	}
	hasDeadline := timeLimit > 0
	if !hasDeadline && opts.MaxIters <= 0 {
		return Result{}, ErrNoBudget
	}
	deadline := start.Add(timeLimit)

	restarts := opts.Restarts
	if restarts == 0 {
		restarts = DefaultRestarts
	}
	if restarts < 0 {
		restarts = 0
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	bound := UpperBound(p)
	seedLayout := construct(p)
	best := seedLayout.Clone()
	bestYield := best.Yield()

	totalIters := 0
	for r := 0; r <= restarts; r++ {
		if bestYield >= bound {
			break
		}
		if hasDeadline && !time.Now().Before(deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}
		itersLeft := 0
		if opts.MaxIters > 0 {
			itersLeft = opts.MaxIters - totalIters
			if itersLeft <= 0 {
				break
			}
		}

		s := &search{
			p:         p,
			lot:       p.Lot(),
			rng:       rngFromSeed(deriveSeed(seed, uint64(r))),
			cur:       seedLayout.Clone(),
			curYield:  seedLayout.Yield(),
			best:      best.Clone(),
			bestYield: bestYield,
		}
		totalIters += s.run(ctx, deadline, hasDeadline, itersLeft, opts.Progress, totalIters)
		if s.bestYield > bestYield {
			best = s.best.Clone()
			bestYield = s.bestYield
		}
	}

	status := StatusFeasible
	if bestYield >= bound {
		status = StatusOptimal
	}
	return Result{
		Status:  status,
		Layout:  best,
		Yield:   bestYield,
		Bound:   bound,
		Iters:   totalIters,
		Elapsed: time.Since(start),
	}, nil
}
