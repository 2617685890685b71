package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/labfab/lasercam/motion"
)

// controllerWrapper sends console commands to the turret
type controllerWrapper struct {
	writer        io.Writer
	lastCommandAt *timer
}

func (c *controllerWrapper) SetShape(name string) error {
	for i, n := range motion.ShapeNames() {
		if n == name {
			c.touch()
			_, err := fmt.Fprintf(c.writer, "P%d\n", i+1)
			return err
		}
	}
	return fmt.Errorf("%w: %q", motion.ErrUnknownShape, name)
}

func (c *controllerWrapper) Snapshot() error {
	c.touch()
	_, err := fmt.Fprint(c.writer, "S\n")
	return err
}

func (c *controllerWrapper) Debug() error {
	_, err := fmt.Fprint(c.writer, "D\n")
	return err
}

func (c *controllerWrapper) touch() {
	if c.lastCommandAt != nil {
		c.lastCommandAt.Set(time.Now())
	}
}
