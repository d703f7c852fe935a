package solver

import (
	"fmt"

	"landLotPlanner/models"
)

// Validate checks that a problem is well-formed before any search runs.
//
// Rules:
//   - lot dimensions positive;
//   - 1..64 building slots, 0..64 parking slots;
//   - MinParkingPct within [0, 100];
//   - every zone has a known kind and a non-empty rectangle inside the lot;
//   - zones are pairwise non-overlapping.
func Validate(p *models.Problem) error {
	if p == nil {
		return ErrNilProblem
	}
	if p.LotWidth <= 0 || p.LotHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrLotSize, p.LotWidth, p.LotHeight)
	}
	if p.MaxBuildings < 1 || p.MaxBuildings > 64 {
		return fmt.Errorf("%w: max_buildings=%d", ErrEntityCount, p.MaxBuildings)
	}
	if p.MaxParkingLots < 0 || p.MaxParkingLots > 64 {
		return fmt.Errorf("%w: max_parking_lots=%d", ErrEntityCount, p.MaxParkingLots)
	}
	if p.MinParkingPct < 0 || p.MinParkingPct > 100 {
		return fmt.Errorf("%w: min_parking_pct=%d", ErrParkingPct, p.MinParkingPct)
	}

	lot := p.Lot()
	for i, z := range p.Zones {
		if z.Kind != models.ZoneBlocked && z.Kind != models.ZoneNoBuild {
			return fmt.Errorf("%w: zone %d kind %q", ErrZoneKind, i, z.Kind)
		}
		if z.Rect.Empty() || z.Rect.W < 0 || z.Rect.H < 0 {
			return fmt.Errorf("%w: zone %d is empty", ErrZoneBounds, i)
		}
		if !lot.ContainsRect(z.Rect) {
			return fmt.Errorf("%w: zone %d", ErrZoneBounds, i)
		}
		for j := i + 1; j < len(p.Zones); j++ {
			if z.Rect.Overlaps(p.Zones[j].Rect) {
				return fmt.Errorf("%w: zones %d and %d", ErrZoneOverlap, i, j)
			}
		}
	}
	return nil
}
