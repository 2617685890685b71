//go:build tinygo && !rp2040

package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// pin to PWM routing is only known for rp2040
func pwmFor(machine.Pin) servo.PWM {
	return nil
}
