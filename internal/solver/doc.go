// Package solver maximizes the yield of a rectangular land lot.
//
// A problem places up to MaxBuildings residential buildings, up to
// MaxParkingLots parking lots, and one park on an integer lot grid, subject
// to:
//
//   - buildings, parking lots, the park, and blocked zones never overlap;
//   - buildings and the park stay clear of no-build zones (parking may
//     cover them);
//   - the park is at least as large as the largest building;
//   - the combined parking area is at least MinParkingPct percent of the
//     combined building area.
//
// The objective, the yield, is the combined building area.
//
// Solve seeds a deterministic constructive layout from largest-empty-
// rectangle placements and then runs a seeded hill-climbing search under a
// wall-clock budget, keeping the best feasible layout seen. The all-empty
// layout is feasible for every valid problem, so Solve always returns a
// result once Validate accepts the input. Results report StatusOptimal only
// when the yield reaches the analytic upper bound from UpperBound; otherwise
// StatusFeasible.
//
// Determinism: same problem, seed, and MaxIters produce the same layout.
// Wall-clock budgets trade determinism for throughput; tests should pin
// MaxIters instead.
package solver
