package camera

import (
	"fmt"
	"strings"
)

// SensorID is the product ID reported by the image sensor
type SensorID uint16

const (
	SensorOV7725  SensorID = 0x77
	SensorOV2640  SensorID = 0x26
	SensorOV3660  SensorID = 0x3660
	SensorOV5640  SensorID = 0x5640
	SensorOV7670  SensorID = 0x76
	SensorNT99141 SensorID = 0x1410
	SensorGC2145  SensorID = 0x2145
	SensorGC032A  SensorID = 0x232a
	SensorGC0308  SensorID = 0x9b
	SensorBF3005  SensorID = 0x30
)

var sensorNames = map[SensorID]string{
	SensorOV7725:  "OV7725",
	SensorOV2640:  "OV2640",
	SensorOV3660:  "OV3660",
	SensorOV5640:  "OV5640",
	SensorOV7670:  "OV7670",
	SensorNT99141: "NT99141",
	SensorGC2145:  "GC2145",
	SensorGC032A:  "GC032A",
	SensorGC0308:  "GC0308",
	SensorBF3005:  "BF3005",
}

func (id SensorID) String() string {
	if name, ok := sensorNames[id]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint16(id))
}

// ParseSensorID accepts a sensor name like "OV3660"
func ParseSensorID(s string) (SensorID, error) {
	for id, name := range sensorNames {
		if strings.EqualFold(s, name) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown sensor %q", s)
}

// Tuning is a correction applied once after init for a sensor variant
type Tuning struct {
	VFlip      bool
	Brightness int
	Saturation int
}

// sensorTunings maps sensor variants to their corrections. Sensors that are not listed need none
var sensorTunings = map[SensorID]Tuning{
	// mounted upside down and slightly over-saturated
	SensorOV3660: {VFlip: true, Brightness: 1, Saturation: -2},
}

// TuningFor returns the correction for the sensor, if any
func TuningFor(id SensorID) (Tuning, bool) {
	t, ok := sensorTunings[id]
	return t, ok
}

// Orientation is how a board mounts its sensor
type Orientation struct {
	VFlip   bool
	HMirror bool
}
