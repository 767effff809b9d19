package platform

// OriginShift returns the translation that moves the top-left-most corner
// of points to (0,0). Backends whose coordinate space starts at the origin
// use it to place a rebased layout.
func OriginShift(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	minX, minY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
	}
	return Point{X: -minX, Y: -minY}
}
