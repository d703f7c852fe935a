package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

// feasibleLayout returns a small hand-checked layout for the default lot:
// one 10x10 building, a matching park, and a parking lot covering part of
// the utility pole (which parking is allowed to do).
func feasibleLayout(p *models.Problem) models.Layout {
	l := EmptyLayout(p)
	l.Buildings[0] = geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	l.Park = geom.Rect{X: 20, Y: 0, W: 10, H: 10}
	l.ParkingLots[0] = geom.Rect{X: 40, Y: 30, W: 5, H: 2}
	return l
}

func TestCheckLayout_Feasible(t *testing.T) {
	p := models.DefaultProblem()
	l := feasibleLayout(p)
	require.NoError(t, CheckLayout(p, &l))
	assert.Equal(t, 100, l.Yield())
	assert.Equal(t, 10, l.ParkingArea())
}

func TestCheckLayout_EmptyLayoutIsFeasible(t *testing.T) {
	p := models.DefaultProblem()
	l := EmptyLayout(p)
	assert.NoError(t, CheckLayout(p, &l))
	assert.Equal(t, 0, l.Yield())
}

func TestCheckLayout_Violations(t *testing.T) {
	p := models.DefaultProblem()

	tests := []struct {
		name    string
		mutate  func(l *models.Layout)
		wantErr error
	}{
		{
			"shape mismatch",
			func(l *models.Layout) { l.Buildings = l.Buildings[:2] },
			ErrLayoutShape,
		},
		{
			"negative extent",
			func(l *models.Layout) { l.Buildings[1] = geom.Rect{X: 1, Y: 1, W: -1, H: 3} },
			ErrNegativeExtent,
		},
		{
			"out of bounds",
			func(l *models.Layout) { l.Buildings[1] = geom.Rect{X: 58, Y: 38, W: 5, H: 5} },
			ErrOutOfBounds,
		},
		{
			"buildings overlap",
			func(l *models.Layout) { l.Buildings[1] = geom.Rect{X: 5, Y: 5, W: 10, H: 10} },
			ErrOverlap,
		},
		{
			"building on flood zone",
			func(l *models.Layout) { l.Buildings[1] = geom.Rect{X: 8, Y: 22, W: 5, H: 5} },
			ErrBlockedZone,
		},
		{
			"parking on flood zone",
			func(l *models.Layout) { l.ParkingLots[1] = geom.Rect{X: 12, Y: 25, W: 3, H: 3} },
			ErrBlockedZone,
		},
		{
			"building on utility pole",
			func(l *models.Layout) { l.Buildings[1] = geom.Rect{X: 42, Y: 32, W: 2, H: 2} },
			ErrNoBuildZone,
		},
		{
			"park on utility pole",
			func(l *models.Layout) { l.Park = geom.Rect{X: 38, Y: 33, W: 4, H: 3} },
			ErrNoBuildZone,
		},
		{
			"park too small",
			func(l *models.Layout) { l.Park = geom.Rect{X: 20, Y: 0, W: 3, H: 3} },
			ErrParkTooSmall,
		},
		{
			"parking ratio",
			func(l *models.Layout) { l.ParkingLots[0] = geom.Rect{} },
			ErrParkingRatio,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := feasibleLayout(p)
			tc.mutate(&l)
			err := CheckLayout(p, &l)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCheckLayout_ParkingMayCoverPole(t *testing.T) {
	p := models.DefaultProblem()
	l := feasibleLayout(p)
	// Fully cover the pole with one parking lot.
	l.ParkingLots[0] = geom.Rect{X: 40, Y: 30, W: 5, H: 5}
	assert.NoError(t, CheckLayout(p, &l))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrNilProblem)

	valid := models.DefaultProblem()
	require.NoError(t, Validate(valid))

	tests := []struct {
		name    string
		mutate  func(p *models.Problem)
		wantErr error
	}{
		{"zero lot", func(p *models.Problem) { p.LotWidth = 0 }, ErrLotSize},
		{"no buildings", func(p *models.Problem) { p.MaxBuildings = 0 }, ErrEntityCount},
		{"negative parking", func(p *models.Problem) { p.MaxParkingLots = -1 }, ErrEntityCount},
		{"pct too high", func(p *models.Problem) { p.MinParkingPct = 101 }, ErrParkingPct},
		{
			"unknown zone kind",
			func(p *models.Problem) { p.Zones[0].Kind = "swamp" },
			ErrZoneKind,
		},
		{
			"zone outside lot",
			func(p *models.Problem) { p.Zones[0].Rect = geom.Rect{X: 55, Y: 35, W: 10, H: 10} },
			ErrZoneBounds,
		},
		{
			"empty zone",
			func(p *models.Problem) { p.Zones[0].Rect = geom.Rect{X: 5, Y: 5} },
			ErrZoneBounds,
		},
		{
			"overlapping zones",
			func(p *models.Problem) { p.Zones[1].Rect = geom.Rect{X: 12, Y: 22, W: 4, H: 4} },
			ErrZoneOverlap,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := models.DefaultProblem()
			tc.mutate(p)
			assert.ErrorIs(t, Validate(p), tc.wantErr)
		})
	}
}
