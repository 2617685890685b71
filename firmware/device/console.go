//go:build tinygo

package device

import (
	"errors"
	"machine"
	"strconv"
	"time"

	"github.com/labfab/lasercam/motion"
)

// Console exposes the turret to the serial command table
type Console struct {
	Player *motion.Player
	Turret *Turret
}

func (c *Console) SetShape(name string) error {
	path, err := motion.Shape(name)
	if err != nil {
		return err
	}
	c.Player.SetPath(path)
	println("Shape " + name + " from next cycle")
	return nil
}

func (c *Console) Snapshot() error {
	return errors.New("no camera on this board")
}

// Debug prints the Player state and the last commanded angles
func (c *Console) Debug() {
	d := c.Player.State().String()
	d += " cycles=" + strconv.FormatInt(c.Player.Cycles(), 10)
	d += " X=" + strconv.Itoa(c.Turret.X.Read()) + " Y=" + strconv.Itoa(c.Turret.Y.Read())
	println(d)
}

// Verbose toggles logging of every servo write
func (c *Console) Verbose() {
	c.Turret.X.verbose = !c.Turret.X.verbose
	c.Turret.Y.verbose = c.Turret.X.verbose
	println("Verbose:", c.Turret.X.verbose)
}

// ReadByte reads from the USB serial console. It yields briefly when nothing is buffered so the
// Player keeps running
func (c *Console) ReadByte() (byte, error) {
	b, err := machine.Serial.ReadByte()
	if err != nil {
		time.Sleep(10 * time.Millisecond)
	}
	return b, err
}
