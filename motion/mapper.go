package motion

import "math"

// basisPoints is the integer resolution of the normalized [-1, 1] domain
const basisPoints = 100

// Axis is the calibrated angle range of one actuator, in degrees
type Axis struct {
	Min int
	Max int
}

// Center returns the angle for normalized position 0
func (a Axis) Center() int {
	return a.scale(0)
}

// Contains reports whether angle is reachable on this axis
func (a Axis) Contains(angle int) bool {
	return angle >= a.Min && angle <= a.Max
}

// scale rescales basis points in [-100, 100] onto [Min, Max] using integer math, truncating like the
// firmware's integer map
func (a Axis) scale(bp int) int {
	return (bp+basisPoints)*(a.Max-a.Min)/(2*basisPoints) + a.Min
}

func (a Axis) clamp(angle int) int {
	if angle < a.Min {
		return a.Min
	}
	if angle > a.Max {
		return a.Max
	}
	return angle
}

// angle maps a single normalized coordinate. The result is always within [Min, Max]
func (a Axis) angle(v float64) int {
	if math.IsNaN(v) {
		return a.Center()
	}
	// bound before converting so huge inputs cannot overflow the integer math; anything past
	// +/-1 clamps anyway
	v = math.Max(-2, math.Min(2, v))

	return a.clamp(a.scale(int(v * basisPoints)))
}

// Frame is a pair of actuator angles derived from a Waypoint
type Frame struct {
	X int
	Y int
}

// Mapper converts normalized positions into actuator angles. Axes are mapped independently
type Mapper struct {
	X Axis
	Y Axis
}

// Map rescales (x, y) from [-1, 1] onto the configured axis ranges. It never fails: out of range input
// is clamped to the mechanical limits
func (m Mapper) Map(x, y float64) Frame {
	return Frame{
		X: m.X.angle(x),
		Y: m.Y.angle(y),
	}
}

// MapWaypoint is Map for a Waypoint
func (m Mapper) MapWaypoint(w Waypoint) Frame {
	return m.Map(w.X, w.Y)
}

// Center returns the frame for the normalized origin
func (m Mapper) Center() Frame {
	return Frame{X: m.X.Center(), Y: m.Y.Center()}
}
