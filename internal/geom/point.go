package geom

// GridSpacing is the distance between adjacent grid points. Every component
// position is a multiple of this value.
const GridSpacing = 100

// Point is a grid-aligned coordinate. Points have value identity and are used
// directly as map and set keys: two components are connected exactly when they
// share a Point. Components are never linked by reference - moving or deleting
// a component can never leave a dangling pointer because adjacency is resolved
// fresh from positions on every solve.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Snap rounds world coordinates to the nearest grid point.
func Snap(x, y float64) Point {
	return Point{
		X: roundToGrid(x),
		Y: roundToGrid(y),
	}
}

// SnapPoint aligns an arbitrary integer coordinate to the grid.
func SnapPoint(p Point) Point {
	return Point{
		X: roundToGrid(float64(p.X)),
		Y: roundToGrid(float64(p.Y)),
	}
}

func roundToGrid(v float64) int {
	g := float64(GridSpacing)
	if v >= 0 {
		return int((v+g/2)/g) * GridSpacing
	}
	return -int((-v+g/2)/g) * GridSpacing
}
