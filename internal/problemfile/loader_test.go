package problemfile

import (
	"os"
	"path/filepath"
	"testing"

	"landLotPlanner/models"
)

const canonicalDoc = `
name: land lot yield
lot:
  width: 60
  height: 40
max_buildings: 5
max_parking_lots: 2
min_parking_pct: 10
zones:
  - kind: blocked
    rect: {x: 10, y: 20, w: 7, h: 12}
  - kind: no-build
    rect: {x: 40, y: 30, w: 5, h: 5}
`

func TestParse_Canonical(t *testing.T) {
	p, err := Parse([]byte(canonicalDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := models.DefaultProblem()
	if p.LotWidth != want.LotWidth || p.LotHeight != want.LotHeight {
		t.Fatalf("lot mismatch: %dx%d", p.LotWidth, p.LotHeight)
	}
	if p.MaxBuildings != 5 || p.MaxParkingLots != 2 || p.MinParkingPct != 10 {
		t.Fatalf("capacity mismatch: %+v", p)
	}
	if len(p.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(p.Zones))
	}
	if p.Zones[0].Kind != models.ZoneBlocked || p.Zones[0].Rect.W != 7 {
		t.Fatalf("blocked zone mismatch: %+v", p.Zones[0])
	}
	if p.Zones[1].Kind != models.ZoneNoBuild || p.Zones[1].Rect.X != 40 {
		t.Fatalf("no-build zone mismatch: %+v", p.Zones[1])
	}
}

func TestParse_UnknownZoneKind(t *testing.T) {
	doc := `
lot: {width: 10, height: 10}
max_buildings: 1
zones:
  - kind: lava
    rect: {x: 0, y: 0, w: 1, h: 1}
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected error for unknown zone kind")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("lot: [not a map")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	if err := os.WriteFile(path, []byte(canonicalDoc), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "land lot yield" {
		t.Fatalf("name mismatch: %q", p.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
