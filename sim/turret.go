package sim

import (
	"sync/atomic"

	"github.com/labfab/lasercam/motion"
)

// Turret is a simulated pan/tilt bracket with a laser. It is safe for the player to drive while the
// simulated camera reads it
type Turret struct {
	Axes motion.Mapper
	// FailAttach makes both servos fail to attach
	FailAttach bool

	x     atomic.Int64
	y     atomic.Int64
	laser atomic.Bool
}

// NewTurret creates a Turret resting at the center of axes
func NewTurret(axes motion.Mapper) *Turret {
	t := &Turret{Axes: axes}
	c := axes.Center()
	t.x.Store(int64(c.X))
	t.y.Store(int64(c.Y))
	return t
}

// ServoX returns the pan actuator
func (t *Turret) ServoX() motion.Actuator {
	return &servo{turret: t, angle: &t.x}
}

// ServoY returns the tilt actuator
func (t *Turret) ServoY() motion.Actuator {
	return &servo{turret: t, angle: &t.y}
}

// Set switches the laser
func (t *Turret) Set(on bool) {
	t.laser.Store(on)
}

// Position returns the current angles and whether the laser is on
func (t *Turret) Position() (int, int, bool) {
	return int(t.x.Load()), int(t.y.Load()), t.laser.Load()
}

// Spot returns where the laser points in normalized coordinates
func (t *Turret) Spot() (float64, float64, bool) {
	x, y, on := t.Position()
	return normalize(t.Axes.X, x), normalize(t.Axes.Y, y), on
}

func normalize(a motion.Axis, angle int) float64 {
	if a.Max == a.Min {
		return 0
	}
	return 2*float64(angle-a.Min)/float64(a.Max-a.Min) - 1
}

type servo struct {
	turret   *Turret
	angle    *atomic.Int64
	attached bool
}

func (s *servo) Attach() bool {
	s.attached = !s.turret.FailAttach
	return s.attached
}

// Write moves the servo. An unattached servo ignores the command like real hardware with no PWM output
func (s *servo) Write(angle int) {
	if !s.attached {
		return
	}
	s.angle.Store(int64(max(0, min(180, angle))))
}

func (s *servo) Read() int {
	return int(s.angle.Load())
}
