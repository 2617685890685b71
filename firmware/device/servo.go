//go:build tinygo

package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// Servo is one turret axis. It remembers the last commanded angle since hobby servos cannot be read back
type Servo struct {
	name     string
	pin      machine.Pin
	pwm      servo.PWM
	servo    servo.Servo
	attached bool
	angle    int
	verbose  bool
}

// NewServo creates an unattached servo on pin
func NewServo(name string, pin machine.Pin) *Servo {
	return &Servo{
		name: name,
		pin:  pin,
		pwm:  pwmFor(pin),
	}
}

// Attach starts the PWM output for the servo
func (s *Servo) Attach() bool {
	if s.pwm == nil {
		println("error creating servo " + s.name + ": no PWM for pin")
		return false
	}

	sv, err := servo.New(s.pwm, s.pin)
	if err != nil {
		println("error creating servo " + s.name + ": " + err.Error())
		return false
	}

	s.servo = sv
	s.attached = true
	return true
}

// Write commands the angle. Writes to an unattached servo are still accepted and only reported, so the
// turret keeps its timing even when an axis is missing
func (s *Servo) Write(angle int) {
	s.angle = angle
	if s.verbose {
		println("servo", s.name, "angle", angle)
	}

	if !s.attached {
		println("error setting servo angle: servo " + s.name + " is not attached")
		return
	}

	err := s.servo.SetAngle(angle)
	if err != nil {
		println("error setting servo angle:", err.Error())
	}
}

// Read returns the last commanded angle
func (s *Servo) Read() int {
	return s.angle
}
