package game

// Rect is an axis-aligned bounding box in field pixels.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Valid reports whether the rectangle has a positive area.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Overlaps reports whether the two rectangles intersect with positive area.
// Rectangles that only share an edge are flush, not overlapping.
func (r Rect) Overlaps(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ClampInto returns r shifted the least amount needed to lie inside outer.
// r must not be larger than outer.
func (r Rect) ClampInto(outer Rect) Rect {
	if r.X < outer.X {
		r.X = outer.X
	}
	if r.Right() > outer.Right() {
		r.X = outer.Right() - r.W
	}
	if r.Y < outer.Y {
		r.Y = outer.Y
	}
	if r.Bottom() > outer.Bottom() {
		r.Y = outer.Bottom() - r.H
	}
	return r
}

// CollideAny reports whether r overlaps any rectangle in rs.
func CollideAny(r Rect, rs []Rect) bool {
	for _, o := range rs {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
