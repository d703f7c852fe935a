package models

import "landLotPlanner/internal/geom"

// PlanStatus classifies the quality of a solved layout.
type PlanStatus string

const (
	// PlanStatusOptimal means the yield reached the analytic upper bound.
	PlanStatusOptimal PlanStatus = "optimal"
	// PlanStatusFeasible means the layout satisfies every constraint but
	// optimality was not proven within the solve budget.
	PlanStatusFeasible PlanStatus = "feasible"
)

// Layout is a concrete placement of every entity slot on the lot.
// Slots with an empty rectangle are unused; the slices always carry exactly
// MaxBuildings and MaxParkingLots entries for their problem.
type Layout struct {
	Buildings   []geom.Rect `json:"buildings"`
	ParkingLots []geom.Rect `json:"parking_lots"`
	Park        geom.Rect   `json:"park"`
}

// Yield is the combined area of the residential buildings, the quantity the
// solver maximizes.
func (l *Layout) Yield() int {
	total := 0
	for _, b := range l.Buildings {
		total += b.Area()
	}
	return total
}

// ParkingArea is the combined area of the parking lots.
func (l *Layout) ParkingArea() int {
	total := 0
	for _, p := range l.ParkingLots {
		total += p.Area()
	}
	return total
}

// LargestBuildingArea returns the area of the largest building, 0 when all
// building slots are unused.
func (l *Layout) LargestBuildingArea() int {
	largest := 0
	for _, b := range l.Buildings {
		if a := b.Area(); a > largest {
			largest = a
		}
	}
	return largest
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() Layout {
	out := Layout{Park: l.Park}
	out.Buildings = append([]geom.Rect(nil), l.Buildings...)
	out.ParkingLots = append([]geom.Rect(nil), l.ParkingLots...)
	return out
}

// Plan is a stored solver result for a problem. Layout is persisted as a
// JSON column.
type Plan struct {
	ID          int64      `db:"id" json:"id"`
	ProblemID   int64      `db:"problem_id" json:"problem_id"`
	Status      PlanStatus `db:"status" json:"status"`
	Yield       int        `db:"yield" json:"yield"`
	Layout      Layout     `db:"layout" json:"layout"`
	SolveMillis int64      `db:"solve_ms" json:"solve_ms"`
	Seed        int64      `db:"seed" json:"seed"`
	CreatedAt   string     `db:"created_at" json:"created_at"`
}
