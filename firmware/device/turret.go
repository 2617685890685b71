//go:build tinygo

package device

import (
	"machine"

	"github.com/labfab/lasercam/board"
)

// Turret is the laser and the two servos of the pan/tilt bracket
type Turret struct {
	X     *Servo
	Y     *Servo
	Laser machine.Pin
}

// NewTurret configures the laser output. Servos are attached by the player
func NewTurret(pins board.TurretPins) *Turret {
	laser := machine.Pin(pins.Laser)
	laser.Configure(machine.PinConfig{Mode: machine.PinOutput})
	laser.Low()

	return &Turret{
		X:     NewServo("X", machine.Pin(pins.ServoX)),
		Y:     NewServo("Y", machine.Pin(pins.ServoY)),
		Laser: laser,
	}
}
