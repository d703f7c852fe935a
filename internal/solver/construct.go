package solver

import (
	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

// construct builds a deterministic feasible starting layout by repeatedly
// placing entities into the largest empty rectangle left on the lot.
//
// Buildings are capped to a fraction of the buildable area so that the park
// and the parking lots still find room; the local search is responsible for
// growing them afterwards. The result always passes CheckLayout; when the
// lot is too tight the fallback is the all-empty layout.
func construct(p *models.Problem) models.Layout {
	lot := p.Lot()
	allZones := p.ZoneRects()
	blockedOnly := p.ZoneRects(models.ZoneBlocked)

	l := EmptyLayout(p)

	buildable := lot.Area()
	for _, z := range allZones {
		buildable -= z.Area()
	}
	areaCap := buildable / (2*p.MaxBuildings + 4)
	if areaCap < 1 {
		areaCap = 1
	}

	// Buildings and the park avoid every zone; parking avoids blocked only.
	buildObstacles := func() []geom.Rect {
		return appendOccupied(append([]geom.Rect(nil), allZones...), &l)
	}
	parkingObstacles := func() []geom.Rect {
		return appendOccupied(append([]geom.Rect(nil), blockedOnly...), &l)
	}

	for i := range l.Buildings {
		r := geom.LargestEmptyRect(lot, buildObstacles())
		if r.Area() == 0 {
			break
		}
		l.Buildings[i] = shrinkToAtMost(r, areaCap)
	}

	// The park must match the largest building. If the best remaining spot
	// is smaller, trim the buildings down to it first.
	if largest := l.LargestBuildingArea(); largest > 0 {
		spot := geom.LargestEmptyRect(lot, buildObstacles())
		if spot.Area() < largest {
			for i, b := range l.Buildings {
				if b.Area() > spot.Area() {
					l.Buildings[i] = shrinkToAtMost(b, spot.Area())
				}
			}
			largest = l.LargestBuildingArea()
		}
		if largest > 0 && spot.Area() >= largest {
			l.Park = shrinkToAtLeast(spot, largest)
		} else {
			// No room for any park: no buildings either.
			for i := range l.Buildings {
				l.Buildings[i] = geom.Rect{}
			}
		}
	}

	// Parking sized to the ratio, one largest-empty-rectangle at a time.
	need := ceilDiv(l.Yield()*p.MinParkingPct, 100)
	for i := range l.ParkingLots {
		if need <= 0 {
			break
		}
		r := geom.LargestEmptyRect(lot, parkingObstacles())
		if r.Area() == 0 {
			break
		}
		if r.Area() > need {
			r = shrinkToAtLeast(r, need)
		}
		l.ParkingLots[i] = r
		need -= r.Area()
	}

	// Still short on parking: give up building area until the ratio holds.
	for need > 0 && p.MinParkingPct > 0 {
		targetYield := l.ParkingArea() * 100 / p.MinParkingPct
		idx, largest := -1, 0
		for i, b := range l.Buildings {
			if a := b.Area(); a > largest {
				idx, largest = i, a
			}
		}
		if idx < 0 {
			break
		}
		excess := l.Yield() - targetYield
		newArea := largest - excess
		if newArea <= 0 {
			l.Buildings[idx] = geom.Rect{}
		} else {
			l.Buildings[idx] = shrinkToAtMost(l.Buildings[idx], newArea)
		}
		need = ceilDiv(l.Yield()*p.MinParkingPct, 100) - l.ParkingArea()
	}

	if CheckLayout(p, &l) != nil {
		return EmptyLayout(p)
	}
	return l
}

// appendOccupied appends every non-empty placement of l to dst.
func appendOccupied(dst []geom.Rect, l *models.Layout) []geom.Rect {
	for _, b := range l.Buildings {
		if !b.Empty() {
			dst = append(dst, b)
		}
	}
	for _, pk := range l.ParkingLots {
		if !pk.Empty() {
			dst = append(dst, pk)
		}
	}
	if !l.Park.Empty() {
		dst = append(dst, l.Park)
	}
	return dst
}

// shrinkToAtMost returns a sub-rectangle of r anchored at its corner with
// area <= target (and >= 1 whenever target >= 1).
func shrinkToAtMost(r geom.Rect, target int) geom.Rect {
	if target <= 0 {
		return geom.Rect{}
	}
	if r.Area() <= target {
		return r
	}
	h := target / r.W
	if h < 1 {
		return geom.Rect{X: r.X, Y: r.Y, W: target, H: 1}
	}
	if h > r.H {
		h = r.H
	}
	w := target / h
	if w > r.W {
		w = r.W
	}
	return geom.Rect{X: r.X, Y: r.Y, W: w, H: h}
}

// shrinkToAtLeast returns a sub-rectangle of r anchored at its corner with
// area >= target, assuming r.Area() >= target. It keeps the full width and
// trims rows, which always fits: ceil(target/W) <= H.
func shrinkToAtLeast(r geom.Rect, target int) geom.Rect {
	if target <= 0 || r.Area() <= target {
		return r
	}
	h := ceilDiv(target, r.W)
	if h < 1 {
		h = 1
	}
	if h > r.H {
		h = r.H
	}
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: h}
}
