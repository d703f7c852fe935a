package geom

// Rect is an axis-aligned rectangle on the integer lot grid.
// (X, Y) is the bottom-left corner; W and H are the side lengths.
// A rectangle with W == 0 or H == 0 is empty and occupies no ground.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Area returns W*H. Empty rectangles have area 0.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle occupies no ground.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.W }

// MaxY returns the exclusive top edge.
func (r Rect) MaxY() int { return r.Y + r.H }

// Overlaps reports whether r and o share any interior ground.
// Empty rectangles never overlap anything; touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// ContainsRect reports whether o lies entirely within r.
// An empty o is contained as long as its corner is within r's closed bounds.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return o.X >= r.X && o.X <= r.MaxX() && o.Y >= r.Y && o.Y <= r.MaxY()
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Intersect returns the overlapping region of r and o.
// The result is empty (possibly with negative extents normalized to zero)
// when the rectangles do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
