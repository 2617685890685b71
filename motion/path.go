package motion

import (
	"errors"
	"sort"
)

// Waypoint is a normalized position. Both coordinates are nominally in [-1, 1]; the Mapper clamps
// anything outside
type Waypoint struct {
	X float64
	Y float64
}

// Path is an ordered sequence of waypoints. A closed shape repeats its first point at the end
type Path []Waypoint

// Closed reports whether the path ends where it starts
func (p Path) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Triangle is a small downward pointing triangle below the center
var Triangle = Path{
	{0, -0.25},
	{1.0 / 8, 0},
	{-1.0 / 8, 0},
	{0, -0.25},
}

// Square traces the edges of a square around the center
var Square = Path{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
	{-0.5, -0.5},
}

// Cross sweeps both axes through the center
var Cross = Path{
	{-1, 0},
	{1, 0},
	{0, 0},
	{0, -1},
	{0, 1},
	{0, 0},
}

var shapes = map[string]Path{
	"triangle": Triangle,
	"square":   Square,
	"cross":    Cross,
}

var ErrUnknownShape = errors.New("unknown shape")

// Shape returns a copy of the named path
func Shape(name string) (Path, error) {
	p, ok := shapes[name]
	if !ok {
		return nil, ErrUnknownShape
	}
	return append(Path(nil), p...), nil
}

// ShapeNames lists the available shapes
func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
