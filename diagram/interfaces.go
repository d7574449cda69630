package diagram

// PathSource computes connector geometry for a scene.
// It is the only routing dependency of renderers, exporters and the viewer.
type PathSource interface {
	// ComputePathPoints returns the simplified route of a connection, or nil when
	// either endpoint shape is missing. The scene is only read.
	ComputePathPoints(scene *Scene, conn Connection, zoom float64) []Point
}

// PathSourceFunc adapts an ordinary function to the PathSource interface.
type PathSourceFunc func(scene *Scene, conn Connection, zoom float64) []Point

// ComputePathPoints calls f(scene, conn, zoom).
func (f PathSourceFunc) ComputePathPoints(scene *Scene, conn Connection, zoom float64) []Point {
	return f(scene, conn, zoom)
}
