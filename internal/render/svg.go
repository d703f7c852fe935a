// Package render exports solved layouts as SVG plans.
//
// The color scheme follows the classic presentation of the problem:
// residential buildings royalblue, parking lots grey, the park limegreen,
// blocked (floodable) zones red, and no-build (utility pole) zones orange,
// all with black outlines on a white lot.
package render

import (
	"fmt"
	"io"

	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

// Fill colors per element class.
const (
	ColorBuilding = "royalblue"
	ColorParking  = "grey"
	ColorPark     = "limegreen"
	ColorBlocked  = "red"
	ColorNoBuild  = "orange"
)

// scale is the SVG pixel size of one lot unit.
const scale = 10

// SVG writes a complete standalone SVG document of the layout onto the lot.
// Zones are drawn under the placements; unused slots are skipped.
func SVG(w io.Writer, p *models.Problem, l *models.Layout) error {
	width := p.LotWidth * scale
	height := p.LotHeight * scale
	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w,
		"<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"white\" stroke=\"black\" stroke-width=\"2\"/>\n",
		width, height); err != nil {
		return err
	}

	for _, z := range p.Zones {
		fill := ColorBlocked
		if z.Kind == models.ZoneNoBuild {
			fill = ColorNoBuild
		}
		if err := writeRect(w, p, z.Rect, fill); err != nil {
			return err
		}
	}
	for _, b := range l.Buildings {
		if err := writeRect(w, p, b, ColorBuilding); err != nil {
			return err
		}
	}
	for _, pk := range l.ParkingLots {
		if err := writeRect(w, p, pk, ColorParking); err != nil {
			return err
		}
	}
	if err := writeRect(w, p, l.Park, ColorPark); err != nil {
		return err
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}

// writeRect emits one lot rectangle, skipping empty ones. The lot origin is
// bottom-left while SVG grows downward, so the y axis is flipped.
func writeRect(w io.Writer, p *models.Problem, r geom.Rect, fill string) error {
	if r.Empty() {
		return nil
	}
	x := r.X * scale
	y := (p.LotHeight - r.Y - r.H) * scale
	_, err := fmt.Fprintf(w,
		"<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\" stroke=\"black\" stroke-width=\"2\"/>\n",
		x, y, r.W*scale, r.H*scale, fill)
	return err
}
