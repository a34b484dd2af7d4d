// Package core provides the types shared by games and platforms: the
// character screen buffer, input frames and world-to-screen projection.
// It has no UI dependencies so games stay pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport projects world coordinates (pixels, Y down) onto a block of
// screen cells.
type Viewport struct {
	WorldW, WorldH float64
	Area           Rect
}

// NewViewport maps a world of worldW x worldH onto area.
func NewViewport(worldW, worldH float64, area Rect) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Area: area}
}

// Point returns the cell containing the world point (x, y).
func (v Viewport) Point(x, y float64) (int, int) {
	cx := v.Area.X + int(x/v.WorldW*float64(v.Area.W))
	cy := v.Area.Y + int(y/v.WorldH*float64(v.Area.H))
	return cx, cy
}

// Box projects a world rectangle given by its top-left corner and size.
// Anything visible covers at least one cell.
func (v Viewport) Box(x, y, w, h float64) Rect {
	x0, y0 := v.Point(x, y)
	x1, y1 := v.Point(x+w, y+h)
	return Rect{X: x0, Y: y0, W: max(1, x1-x0), H: max(1, y1-y0)}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	return min(max(val, lo), hi)
}
