package solver

import "landLotPlanner/models"

// UpperBound returns an analytic upper bound on the yield of any feasible
// layout for p. The bound combines three necessary area conditions:
//
//   - buildings and the park must fit in the lot minus blocked and no-build
//     ground (buildable area);
//   - buildings, the park, and parking must together fit in the lot minus
//     blocked ground (usable area);
//   - the park is at least ceil(yield / MaxBuildings), since the largest of
//     MaxBuildings buildings carries at least the average area;
//   - parking is at least ceil(yield * MinParkingPct / 100).
//
// The left-hand sides grow monotonically with the yield, so the largest
// admissible value is found by binary search. The bound is not tight in
// general (it ignores packing), but a layout reaching it is provably
// optimal.
func UpperBound(p *models.Problem) int {
	lotArea := p.LotWidth * p.LotHeight
	blocked, noBuild := 0, 0
	for _, z := range p.Zones {
		// Zones are validated to lie inside the lot and not overlap.
		switch z.Kind {
		case models.ZoneBlocked:
			blocked += z.Rect.Area()
		case models.ZoneNoBuild:
			noBuild += z.Rect.Area()
		}
	}
	buildable := lotArea - blocked - noBuild
	usable := lotArea - blocked

	admissible := func(y int) bool {
		park := ceilDiv(y, p.MaxBuildings)
		parking := ceilDiv(y*p.MinParkingPct, 100)
		if p.MaxParkingLots == 0 && parking > 0 {
			return false
		}
		return y+park <= buildable && y+park+parking <= usable
	}

	lo, hi := 0, buildable
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if admissible(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
