package solver

import (
	"context"
	"math/rand"
	"time"

	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

// search is the mutable state of one hill-climbing pass. It mutates cur in
// place and reverts rejected moves, keeping the best feasible layout aside.
type search struct {
	p   *models.Problem
	lot geom.Rect
	rng *rand.Rand

	cur      models.Layout
	curYield int

	best      models.Layout
	bestYield int
}

// run climbs until the iteration cap, the deadline, ctx cancellation, or a
// stall. maxIters<=0 means uncapped. Returns the iterations performed.
func (s *search) run(ctx context.Context, deadline time.Time, hasDeadline bool, maxIters int, progress func(iter, bestYield int), iterBase int) int {
	iters := 0
	stall := 0
	for {
		if maxIters > 0 && iters >= maxIters {
			break
		}
		if iters&deadlineCheckMask == 0 {
			if hasDeadline && !time.Now().Before(deadline) {
				break
			}
			if ctx.Err() != nil {
				break
			}
		}
		iters++

		if s.step() && s.curYield > s.bestYield {
			s.best = s.cur.Clone()
			s.bestYield = s.curYield
			stall = 0
			if progress != nil {
				progress(iterBase+iters, s.bestYield)
			}
			continue
		}
		stall++
		if stall >= stallLimit {
			break
		}
	}
	return iters
}

// step proposes one mutation and reports whether it was accepted.
// Yield-improving moves are always taken; yield-neutral moves (park and
// parking adjustments that free up ground) are taken half the time to walk
// plateaus without cycling hard.
func (s *search) step() bool {
	nb, np := len(s.cur.Buildings), len(s.cur.ParkingLots)
	var slot *geom.Rect
	switch k := s.rng.Intn(nb + np + 1); {
	case k < nb:
		slot = &s.cur.Buildings[k]
	case k < nb+np:
		slot = &s.cur.ParkingLots[k-nb]
	default:
		slot = &s.cur.Park
	}

	old := *slot
	cand := s.mutate(old)
	if cand == old {
		return false
	}
	*slot = cand
	if CheckLayout(s.p, &s.cur) != nil {
		*slot = old
		return false
	}
	newYield := s.cur.Yield()
	if newYield > s.curYield || (newYield == s.curYield && s.rng.Intn(2) == 0) {
		s.curYield = newYield
		return true
	}
	*slot = old
	return false
}

// mutate derives a candidate rectangle from r. Out-of-bounds candidates are
// fine here; CheckLayout rejects them.
func (s *search) mutate(r geom.Rect) geom.Rect {
	w, h := s.lot.W, s.lot.H
	if r.Empty() {
		return s.stampRect(w, h)
	}
	switch s.rng.Intn(6) {
	case 0, 1: // grow one side
		d := 1 + s.rng.Intn(3)
		switch s.rng.Intn(4) {
		case 0:
			r.X -= d
			r.W += d
		case 1:
			r.W += d
		case 2:
			r.Y -= d
			r.H += d
		default:
			r.H += d
		}
	case 2: // shift
		r.X += s.rng.Intn(7) - 3
		r.Y += s.rng.Intn(7) - 3
	case 3: // shrink one side; vanishing clears the slot
		d := 1 + s.rng.Intn(2)
		if s.rng.Intn(2) == 0 {
			r.W -= d
		} else {
			r.H -= d
		}
		if r.Empty() {
			return geom.Rect{}
		}
	case 4: // relocate, keep size
		if r.W <= w && r.H <= h {
			r.X = s.lot.X + s.rng.Intn(w-r.W+1)
			r.Y = s.lot.Y + s.rng.Intn(h-r.H+1)
		}
	default: // restamp with a fresh small rectangle
		return s.stampRect(w, h)
	}
	return r
}

// stampRect returns a small random rectangle fully inside the lot.
func (s *search) stampRect(lotW, lotH int) geom.Rect {
	w := 1 + s.rng.Intn(minInt(8, lotW))
	h := 1 + s.rng.Intn(minInt(8, lotH))
	return geom.Rect{
		X: s.lot.X + s.rng.Intn(lotW-w+1),
		Y: s.lot.Y + s.rng.Intn(lotH-h+1),
		W: w,
		H: h,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
