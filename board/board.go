package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/motion"
)

// NC marks a pin that is not connected
const NC = camera.NC

// Family is the microcontroller family of a board
type Family int

const (
	FamilyESP32 Family = iota
	FamilyESP32S3
	FamilyRP2040
)

func (f Family) String() string {
	switch f {
	case FamilyESP32:
		return "ESP32"
	case FamilyESP32S3:
		return "ESP32-S3"
	case FamilyRP2040:
		return "RP2040"
	default:
		return "Unknown"
	}
}

// CameraPins is the camera wiring of a board
type CameraPins = camera.Pins

// TurretPins is the wiring of the laser and the two servos
type TurretPins struct {
	Laser  int
	ServoX int
	ServoY int
}

// Profile describes one supported board
type Profile struct {
	Name   string
	Family Family
	// FastMemory is set when the board carries PSRAM
	FastMemory bool

	Camera      *CameraPins
	Orientation camera.Orientation
	// PullUps are input pins that need a pull-up, like the buttons on the ESP-EYE
	PullUps []int

	Turret *TurretPins
	Axes   motion.Mapper
}

// Builder returns the capture config builder for the board's family
func (p Profile) Builder() camera.Builder {
	return camera.Builder{RawDualBuffer: p.Family == FamilyESP32S3}
}

// Probe returns the board's static memory capability
func (p Profile) Probe() camera.Prober {
	return camera.StaticProbe(p.FastMemory)
}

var ErrUnknownBoard = errors.New("unknown board")

// Validate checks that the profile can drive the peripherals it declares
func (p Profile) Validate() error {
	if p.Camera == nil && p.Turret == nil {
		return fmt.Errorf("board %q has no camera or turret", p.Name)
	}
	if c := p.Camera; c != nil {
		if c.XCLK == NC || c.PCLK == NC || c.VSYNC == NC || c.HREF == NC {
			return fmt.Errorf("board %q: camera clock and sync pins are required", p.Name)
		}
		for i, d := range c.D {
			if d == NC {
				return fmt.Errorf("board %q: camera data pin D%d is not connected", p.Name, i)
			}
		}
	}
	if t := p.Turret; t != nil {
		if t.Laser == NC || t.ServoX == NC || t.ServoY == NC {
			return fmt.Errorf("board %q: turret pins are required", p.Name)
		}
		if p.Axes.X.Min > p.Axes.X.Max || p.Axes.Y.Min > p.Axes.Y.Max {
			return fmt.Errorf("board %q: axis min is above max", p.Name)
		}
		if p.Axes.X.Min < 0 || p.Axes.Y.Min < 0 || p.Axes.X.Max > 180 || p.Axes.Y.Max > 180 {
			return fmt.Errorf("board %q: axis range is outside 0-180", p.Name)
		}
	}
	return nil
}

// Default is the board the camera build targets when none is selected
const Default = "esp-eye"

// Lookup returns the named profile
func Lookup(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}
	return p, nil
}

// Names lists all profiles
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
