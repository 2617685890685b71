package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var turret = Mapper{
	X: Axis{Min: 40, Max: 160},
	Y: Axis{Min: 40, Max: 160},
}

func TestMapCenter(t *testing.T) {
	assert.Equal(t, Frame{X: 100, Y: 100}, turret.Map(0, 0))
	assert.Equal(t, turret.Center(), turret.Map(0, 0))

	odd := Mapper{X: Axis{Min: 0, Max: 179}, Y: Axis{Min: 10, Max: 21}}
	assert.Equal(t, Frame{X: (0 + 179) / 2, Y: (10 + 21) / 2}, odd.Map(0, 0))
}

func TestMapBounds(t *testing.T) {
	assert.Equal(t, Frame{X: 40, Y: 40}, turret.Map(-1, -1))
	assert.Equal(t, Frame{X: 160, Y: 160}, turret.Map(1, 1))

	asym := Mapper{X: Axis{Min: 10, Max: 170}, Y: Axis{Min: 60, Max: 120}}
	assert.Equal(t, Frame{X: 10, Y: 60}, asym.Map(-1, -1))
	assert.Equal(t, Frame{X: 170, Y: 120}, asym.Map(1, 1))
}

func TestMapTriangle(t *testing.T) {
	tests := []struct {
		w        Waypoint
		expected Frame
	}{
		{Waypoint{0, -0.25}, Frame{100, 85}},
		{Waypoint{1.0 / 8, 0}, Frame{107, 100}},
		{Waypoint{-1.0 / 8, 0}, Frame{92, 100}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, turret.MapWaypoint(tt.w), "waypoint %v", tt.w)
	}
}

func TestMapClampTotality(t *testing.T) {
	mappers := []Mapper{
		turret,
		{X: Axis{Min: 0, Max: 180}, Y: Axis{Min: 45, Max: 135}},
		{X: Axis{Min: 90, Max: 90}, Y: Axis{Min: 3, Max: 7}},
	}
	for _, m := range mappers {
		for x := -2.0; x <= 2.0; x += 0.01 {
			for y := -2.0; y <= 2.0; y += 0.05 {
				f := m.Map(x, y)
				if !m.X.Contains(f.X) || !m.Y.Contains(f.Y) {
					t.Fatalf("Map(%v, %v) = %v is outside %v", x, y, f, m)
				}
			}
		}
	}
}

func TestMapNonFinite(t *testing.T) {
	assert.Equal(t, turret.Center(), turret.Map(math.NaN(), math.NaN()))
	assert.Equal(t, Frame{X: 160, Y: 40}, turret.Map(math.Inf(1), math.Inf(-1)))
	assert.Equal(t, Frame{X: 160, Y: 40}, turret.Map(1e300, -1e300))
}

func TestMapIsMonotonic(t *testing.T) {
	prev := turret.X.Min
	for x := -1.0; x <= 1.0; x += 0.01 {
		a := turret.Map(x, 0).X
		if a < prev {
			t.Fatalf("angle decreased at x=%v: %d < %d", x, a, prev)
		}
		prev = a
	}
}
