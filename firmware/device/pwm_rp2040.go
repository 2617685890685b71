//go:build tinygo && rp2040

package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// rp2040 pins share 8 PWM slices, two channels each
var slices = [8]servo.PWM{
	machine.PWM0, machine.PWM1, machine.PWM2, machine.PWM3,
	machine.PWM4, machine.PWM5, machine.PWM6, machine.PWM7,
}

func pwmFor(pin machine.Pin) servo.PWM {
	return slices[(uint8(pin)/2)%8]
}
