package lasercam

import (
	"fmt"
	"strconv"
	"strings"
)

// Logger is the diagnostic side channel: one human readable line per call. *log.Logger satisfies it
type Logger interface {
	Println(v ...any)
}

// Discard is a Logger that drops everything
var Discard Logger = discard{}

type discard struct{}

func (discard) Println(...any) {}

// EventKind identifies one line of the diagnostic channel written by the camera and turret loops
type EventKind int

const (
	EventUnknown EventKind = iota
	EventLaserReady
	EventServoReady
	EventAttachFailed
	EventLaserOn
	EventSequenceStart
	EventPoint
	EventMove
	EventPosition
	EventSequenceDone
	EventCameraInitFailed
	EventWiFiConnecting
	EventWiFiConnected
	EventCameraReady
)

func (k EventKind) String() string {
	switch k {
	case EventLaserReady:
		return "LaserReady"
	case EventServoReady:
		return "ServoReady"
	case EventAttachFailed:
		return "AttachFailed"
	case EventLaserOn:
		return "LaserOn"
	case EventSequenceStart:
		return "SequenceStart"
	case EventPoint:
		return "Point"
	case EventMove:
		return "Move"
	case EventPosition:
		return "Position"
	case EventSequenceDone:
		return "SequenceDone"
	case EventCameraInitFailed:
		return "CameraInitFailed"
	case EventWiFiConnecting:
		return "WiFiConnecting"
	case EventWiFiConnected:
		return "WiFiConnected"
	case EventCameraReady:
		return "CameraReady"
	default:
		fallthrough
	case EventUnknown:
		return "Unknown"
	}
}

// Event is a parsed diagnostic line. Only the fields relevant to Kind are set
type Event struct {
	Kind EventKind

	// Point
	Index int
	Total int

	// Move
	X float64
	Y float64

	// Move and Position
	AngleX int
	AngleY int

	// AttachFailed
	Axis string

	// CameraInitFailed
	Code int

	// CameraReady
	Addr string
}

const (
	laserReadyLine    = "Laser Control Ready"
	servoReadyLine    = "Servo Control Ready"
	laserOnLine       = "Laser ON"
	sequenceStartLine = "Starting movement sequence"
	sequenceDoneLine  = "Sequence completed. Restarting..."
	wifiConnecting    = "WiFi connecting"
	wifiConnected     = "WiFi connected"

	attachPrefix     = "Failed to attach "
	attachSuffix     = " servo"
	pointPrefix      = "Moving to point "
	movePrefix       = "Moving to X:"
	positionPrefix   = "Current position - X:"
	initFailedPrefix = "Camera init failed with error 0x"
	readyPrefix      = "Camera Ready! Use 'http://"
	readySuffix      = "' to connect"
)

func LaserReadyLine() string     { return laserReadyLine }
func ServoReadyLine() string     { return servoReadyLine }
func LaserOnLine() string        { return laserOnLine }
func SequenceStartLine() string  { return sequenceStartLine }
func SequenceDoneLine() string   { return sequenceDoneLine }
func WiFiConnectingLine() string { return wifiConnecting }
func WiFiConnectedLine() string  { return wifiConnected }

// AttachFailedLine reports that the servo for axis ("X" or "Y") could not be attached
func AttachFailedLine(axis string) string {
	return attachPrefix + axis + attachSuffix
}

// PointLine announces the 1-based index of the next waypoint
func PointLine(index, total int) string {
	return pointPrefix + strconv.Itoa(index) + " of " + strconv.Itoa(total)
}

// MoveLine reports a normalized target and the angles commanded for it
func MoveLine(x, y float64, angleX, angleY int) string {
	return movePrefix + ftoa(x) + " Y:" + ftoa(y) +
		" (Angles X:" + strconv.Itoa(angleX) + " Y:" + strconv.Itoa(angleY) + ")"
}

// PositionLine reports the angles read back from the actuators
func PositionLine(angleX, angleY int) string {
	return positionPrefix + strconv.Itoa(angleX) + " Y:" + strconv.Itoa(angleY)
}

// CameraInitFailedLine reports the platform status code of a failed camera init
func CameraInitFailedLine(code int) string {
	return initFailedPrefix + strconv.FormatUint(uint64(uint32(code)), 16)
}

// CameraReadyLine reports the address the stream can be reached at
func CameraReadyLine(addr string) string {
	return readyPrefix + addr + readySuffix
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// ParseEvent parses a single diagnostic line. It returns false for lines that are not events, like
// progress dots or driver output
func ParseEvent(line string) (Event, bool) {
	line = strings.TrimSpace(line)

	switch line {
	case laserReadyLine:
		return Event{Kind: EventLaserReady}, true
	case servoReadyLine:
		return Event{Kind: EventServoReady}, true
	case laserOnLine:
		return Event{Kind: EventLaserOn}, true
	case sequenceStartLine:
		return Event{Kind: EventSequenceStart}, true
	case sequenceDoneLine:
		return Event{Kind: EventSequenceDone}, true
	case wifiConnecting:
		return Event{Kind: EventWiFiConnecting}, true
	case wifiConnected:
		return Event{Kind: EventWiFiConnected}, true
	}

	switch {
	case strings.HasPrefix(line, attachPrefix) && strings.HasSuffix(line, attachSuffix):
		axis := strings.TrimSuffix(strings.TrimPrefix(line, attachPrefix), attachSuffix)
		return Event{Kind: EventAttachFailed, Axis: axis}, true

	case strings.HasPrefix(line, pointPrefix):
		e := Event{Kind: EventPoint}
		_, err := fmt.Sscanf(strings.TrimPrefix(line, pointPrefix), "%d of %d", &e.Index, &e.Total)
		return e, err == nil

	case strings.HasPrefix(line, movePrefix):
		e := Event{Kind: EventMove}
		_, err := fmt.Sscanf(line, movePrefix+"%f Y:%f (Angles X:%d Y:%d)", &e.X, &e.Y, &e.AngleX, &e.AngleY)
		return e, err == nil

	case strings.HasPrefix(line, positionPrefix):
		e := Event{Kind: EventPosition}
		_, err := fmt.Sscanf(line, positionPrefix+"%d Y:%d", &e.AngleX, &e.AngleY)
		return e, err == nil

	case strings.HasPrefix(line, initFailedPrefix):
		code, err := strconv.ParseUint(strings.TrimPrefix(line, initFailedPrefix), 16, 32)
		return Event{Kind: EventCameraInitFailed, Code: int(int32(code))}, err == nil

	case strings.HasPrefix(line, readyPrefix) && strings.HasSuffix(line, readySuffix):
		addr := strings.TrimSuffix(strings.TrimPrefix(line, readyPrefix), readySuffix)
		return Event{Kind: EventCameraReady, Addr: addr}, addr != ""
	}

	return Event{}, false
}

// StreamURL returns the address of a CameraReady event as a URL
func (e Event) StreamURL() string {
	if e.Addr == "" {
		return ""
	}
	return "http://" + e.Addr
}
