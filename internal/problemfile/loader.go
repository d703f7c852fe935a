// Package problemfile loads planning problems from YAML documents, the
// input format of the plan CLI.
package problemfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

type rectDoc struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type zoneDoc struct {
	Kind string  `yaml:"kind"`
	Rect rectDoc `yaml:"rect"`
}

type problemDoc struct {
	Name string `yaml:"name"`
	Lot  struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"lot"`
	MaxBuildings   int       `yaml:"max_buildings"`
	MaxParkingLots int       `yaml:"max_parking_lots"`
	MinParkingPct  int       `yaml:"min_parking_pct"`
	Zones          []zoneDoc `yaml:"zones"`
}

// Parse decodes a YAML problem document.
func Parse(data []byte) (*models.Problem, error) {
	var doc problemDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}

	p := &models.Problem{
		Name:           doc.Name,
		LotWidth:       doc.Lot.Width,
		LotHeight:      doc.Lot.Height,
		MaxBuildings:   doc.MaxBuildings,
		MaxParkingLots: doc.MaxParkingLots,
		MinParkingPct:  doc.MinParkingPct,
		Status:         models.ProblemStatusSubmitted,
	}
	for i, z := range doc.Zones {
		kind := models.ZoneKind(z.Kind)
		switch kind {
		case models.ZoneBlocked, models.ZoneNoBuild:
		default:
			return nil, fmt.Errorf("zone %d: unknown kind %q", i, z.Kind)
		}
		p.Zones = append(p.Zones, models.Zone{
			Kind: kind,
			Rect: geom.Rect{X: z.Rect.X, Y: z.Rect.Y, W: z.Rect.W, H: z.Rect.H},
		})
	}
	return p, nil
}

// Load reads and decodes a YAML problem file.
func Load(path string) (*models.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}
	return Parse(data)
}
