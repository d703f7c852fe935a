package models

import "landLotPlanner/internal/geom"

// ProblemStatus represents the lifecycle of a planning problem.
type ProblemStatus string

const (
	ProblemStatusSubmitted ProblemStatus = "submitted"
	ProblemStatusSolving   ProblemStatus = "solving"
	ProblemStatusSolved    ProblemStatus = "solved"
	ProblemStatusFailed    ProblemStatus = "failed"
	ProblemStatusWithdrawn ProblemStatus = "withdrawn"
)

// ZoneKind classifies a restricted zone on the lot.
type ZoneKind string

const (
	// ZoneBlocked marks ground where nothing may be placed (floodable area).
	ZoneBlocked ZoneKind = "blocked"
	// ZoneNoBuild marks ground where buildings and the park are forbidden
	// but parking lots are allowed (utility pole).
	ZoneNoBuild ZoneKind = "no-build"
)

// Zone is a fixed restricted rectangle on the lot.
type Zone struct {
	Kind ZoneKind  `json:"kind"`
	Rect geom.Rect `json:"rect"`
}

// Problem describes one lot-planning instance with a one-to-one relation to
// User via SubmittedBy. Zones are persisted as a JSON column.
type Problem struct {
	ID             int64         `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	LotWidth       int           `db:"lot_width" json:"lot_width"`
	LotHeight      int           `db:"lot_height" json:"lot_height"`
	MaxBuildings   int           `db:"max_buildings" json:"max_buildings"`
	MaxParkingLots int           `db:"max_parking_lots" json:"max_parking_lots"`
	// MinParkingPct is the minimum combined parking area as a percentage of
	// the combined building area (10 means "at least 10%").
	MinParkingPct int           `db:"min_parking_pct" json:"min_parking_pct"`
	Zones         []Zone        `db:"zones" json:"zones"`
	SubmittedBy   int64         `db:"submitted_by" json:"submitted_by"`
	Status        ProblemStatus `db:"status" json:"status"`
	CreatedAt     string        `db:"created_at" json:"created_at"`
}

// Lot returns the lot as a rectangle anchored at the origin.
func (p *Problem) Lot() geom.Rect {
	return geom.Rect{X: 0, Y: 0, W: p.LotWidth, H: p.LotHeight}
}

// ZoneRects returns the rectangles of all zones matching the given kinds.
// With no kinds, every zone rectangle is returned.
func (p *Problem) ZoneRects(kinds ...ZoneKind) []geom.Rect {
	var out []geom.Rect
	for _, z := range p.Zones {
		if len(kinds) == 0 {
			out = append(out, z.Rect)
			continue
		}
		for _, k := range kinds {
			if z.Kind == k {
				out = append(out, z.Rect)
				break
			}
		}
	}
	return out
}

// DefaultProblem returns the canonical 60x40 instance: five buildings, two
// parking lots, a 10% parking ratio, a floodable area and a utility pole.
func DefaultProblem() *Problem {
	return &Problem{
		Name:           "land lot yield",
		LotWidth:       60,
		LotHeight:      40,
		MaxBuildings:   5,
		MaxParkingLots: 2,
		MinParkingPct:  10,
		Zones: []Zone{
			{Kind: ZoneBlocked, Rect: geom.Rect{X: 10, Y: 20, W: 7, H: 12}},
			{Kind: ZoneNoBuild, Rect: geom.Rect{X: 40, Y: 30, W: 5, H: 5}},
		},
		Status: ProblemStatusSubmitted,
	}
}
