package solver

import (
	"fmt"

	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

// CheckLayout reports whether a layout is feasible for the problem.
// It assumes the problem itself already passed Validate. The check is also
// the arbiter for externally submitted layouts, so it never trusts slot
// counts or coordinates.
//
// Feasible means:
//   - slot counts match the problem exactly;
//   - every non-empty placement has non-negative extents and lies inside
//     the lot (zero-area placements are unused slots and unrestricted);
//   - no two placements overlap;
//   - nothing overlaps a blocked zone;
//   - no building and not the park overlaps a no-build zone;
//   - park area >= largest building area;
//   - parking area * 100 >= yield * MinParkingPct.
func CheckLayout(p *models.Problem, l *models.Layout) error {
	if p == nil {
		return ErrNilProblem
	}
	if len(l.Buildings) != p.MaxBuildings || len(l.ParkingLots) != p.MaxParkingLots {
		return fmt.Errorf("%w: got %d buildings, %d parking lots",
			ErrLayoutShape, len(l.Buildings), len(l.ParkingLots))
	}

	lot := p.Lot()
	blocked := p.ZoneRects(models.ZoneBlocked)
	noBuild := p.ZoneRects(models.ZoneNoBuild)

	// Gather occupied placements once; index order is stable for messages.
	type placement struct {
		name     string
		rect     geom.Rect
		buildRes bool // restricted from no-build zones
	}
	var occupied []placement
	for i, b := range l.Buildings {
		if err := placementShape(lot, b); err != nil {
			return fmt.Errorf("%w (building %d)", err, i)
		}
		if !b.Empty() {
			occupied = append(occupied, placement{fmt.Sprintf("building %d", i), b, true})
		}
	}
	for i, pk := range l.ParkingLots {
		if err := placementShape(lot, pk); err != nil {
			return fmt.Errorf("%w (parking lot %d)", err, i)
		}
		if !pk.Empty() {
			occupied = append(occupied, placement{fmt.Sprintf("parking lot %d", i), pk, false})
		}
	}
	if err := placementShape(lot, l.Park); err != nil {
		return fmt.Errorf("%w (park)", err)
	}
	if !l.Park.Empty() {
		occupied = append(occupied, placement{"park", l.Park, true})
	}

	for i, a := range occupied {
		for j := i + 1; j < len(occupied); j++ {
			if a.rect.Overlaps(occupied[j].rect) {
				return fmt.Errorf("%w: %s and %s", ErrOverlap, a.name, occupied[j].name)
			}
		}
		for _, z := range blocked {
			if a.rect.Overlaps(z) {
				return fmt.Errorf("%w: %s", ErrBlockedZone, a.name)
			}
		}
		if a.buildRes {
			for _, z := range noBuild {
				if a.rect.Overlaps(z) {
					return fmt.Errorf("%w: %s", ErrNoBuildZone, a.name)
				}
			}
		}
	}

	if l.Park.Area() < l.LargestBuildingArea() {
		return fmt.Errorf("%w: park %d < building %d",
			ErrParkTooSmall, l.Park.Area(), l.LargestBuildingArea())
	}
	if l.ParkingArea()*100 < l.Yield()*p.MinParkingPct {
		return fmt.Errorf("%w: parking %d, yield %d, need %d%%",
			ErrParkingRatio, l.ParkingArea(), l.Yield(), p.MinParkingPct)
	}
	return nil
}

// placementShape validates extents and lot containment for one slot.
func placementShape(lot geom.Rect, r geom.Rect) error {
	if r.W < 0 || r.H < 0 {
		return ErrNegativeExtent
	}
	if r.Empty() {
		return nil
	}
	if !lot.ContainsRect(r) {
		return ErrOutOfBounds
	}
	return nil
}

// EmptyLayout returns the all-unused layout shaped for p. It is feasible for
// every valid problem and is the solver's fallback.
func EmptyLayout(p *models.Problem) models.Layout {
	return models.Layout{
		Buildings:   make([]geom.Rect, p.MaxBuildings),
		ParkingLots: make([]geom.Rect, p.MaxParkingLots),
	}
}
