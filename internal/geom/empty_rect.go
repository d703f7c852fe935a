package geom

import "sort"

// LargestEmptyRect returns a maximum-area rectangle inside bounds that
// overlaps none of the obstacles. Empty obstacles are ignored; obstacles are
// clipped to bounds first. When bounds is fully covered the zero Rect is
// returned.
//
// The search runs on the compressed coordinate grid induced by the obstacle
// edges, so it is exact for integer rectangles. With m obstacles the grid has
// at most 2m+2 columns and rows; the scan below is O(cols^2 * rows), which is
// negligible for the handful of zones and placements a lot carries.
//
// Ties are broken deterministically: the first maximal rectangle found in
// column-major scan order wins. Determinism matters because the solver seeds
// its search from this function.
func LargestEmptyRect(bounds Rect, obstacles []Rect) Rect {
	if bounds.Empty() {
		return Rect{}
	}

	clipped := make([]Rect, 0, len(obstacles))
	for _, o := range obstacles {
		c := bounds.Intersect(o)
		if !c.Empty() {
			clipped = append(clipped, c)
		}
	}
	if len(clipped) == 0 {
		return bounds
	}

	xs := cutCoords(bounds.X, bounds.MaxX(), clipped, true)
	ys := cutCoords(bounds.Y, bounds.MaxY(), clipped, false)

	// free[i][j] is true when the cell xs[i]..xs[i+1] x ys[j]..ys[j+1]
	// is not covered by any obstacle. Cells never straddle an obstacle edge,
	// so testing any interior overlap is enough.
	nx, ny := len(xs)-1, len(ys)-1
	free := make([][]bool, nx)
	for i := 0; i < nx; i++ {
		free[i] = make([]bool, ny)
		for j := 0; j < ny; j++ {
			cell := Rect{X: xs[i], Y: ys[j], W: xs[i+1] - xs[i], H: ys[j+1] - ys[j]}
			free[i][j] = true
			for _, o := range clipped {
				if cell.Overlaps(o) {
					free[i][j] = false
					break
				}
			}
		}
	}

	var best Rect
	for i0 := 0; i0 < nx; i0++ {
		for i1 := i0; i1 < nx; i1++ {
			// Shortcut: a column range whose width cannot beat the best
			// even with full height is not worth scanning.
			width := xs[i1+1] - xs[i0]
			if width*bounds.H <= best.Area() {
				continue
			}
			runStart := -1
			for j := 0; j <= ny; j++ {
				open := j < ny && columnsFree(free, i0, i1, j)
				if open && runStart < 0 {
					runStart = j
				}
				if !open && runStart >= 0 {
					height := ys[j] - ys[runStart]
					if width*height > best.Area() {
						best = Rect{X: xs[i0], Y: ys[runStart], W: width, H: height}
					}
					runStart = -1
				}
			}
		}
	}
	return best
}

// columnsFree reports whether every cell in columns i0..i1 of row j is free.
func columnsFree(free [][]bool, i0, i1, j int) bool {
	for i := i0; i <= i1; i++ {
		if !free[i][j] {
			return false
		}
	}
	return true
}

// cutCoords collects the sorted, deduplicated cut coordinates along one axis:
// the bounds edges plus every obstacle edge that falls strictly inside them.
func cutCoords(lo, hi int, obstacles []Rect, xAxis bool) []int {
	coords := []int{lo, hi}
	for _, o := range obstacles {
		var a, b int
		if xAxis {
			a, b = o.X, o.MaxX()
		} else {
			a, b = o.Y, o.MaxY()
		}
		if a > lo && a < hi {
			coords = append(coords, a)
		}
		if b > lo && b < hi {
			coords = append(coords, b)
		}
	}
	sort.Ints(coords)
	out := coords[:1]
	for _, c := range coords[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}
