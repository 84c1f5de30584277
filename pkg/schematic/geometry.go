package schematic

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance is the maximum world-space distance at which two points count as
// the same electrical point. A single value is shared by the connectivity
// resolver and every ERC proximity check; using different tolerances would
// make the extractor and the rule engine disagree about what is connected.
const Tolerance = 2.0

// Distance returns the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// WithinTolerance reports whether two points are within the connectivity
// tolerance by Euclidean distance. Used by the ERC proximity checks.
func WithinTolerance(a, b Point) bool {
	return Distance(a, b) <= Tolerance
}

// Coincident reports whether two points match within tolerance on both axes.
// This is the predicate used by the spatial join when grouping connection
// points into nets.
func Coincident(a, b Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Tolerance) &&
		scalar.EqualWithinAbs(a.Y, b.Y, Tolerance)
}

// PinWorldPosition computes the world position of a pin: the local offset is
// mirrored (if the component is mirrored), rotated by the component rotation
// and translated by the component position.
func (c *Component) PinWorldPosition(pin Pin) Point {
	local := pin.Position
	switch c.Mirror {
	case MirrorX:
		local.Y = -local.Y
	case MirrorY:
		local.X = -local.X
	}

	rad := c.Rotation * math.Pi / 180.0
	sin, cos := math.Sincos(rad)

	return Point{
		X: c.Position.X + local.X*cos - local.Y*sin,
		Y: c.Position.Y + local.X*sin + local.Y*cos,
	}
}
