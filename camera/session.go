package camera

import (
	"errors"
	"fmt"
	"sync"

	"github.com/labfab/lasercam"
)

// Platform status codes reported by camera drivers
const (
	CodeFail           = -1
	CodeNoMem          = 0x101
	CodeInvalidArg     = 0x102
	CodeNotFound       = 0x105
	CodeNotSupported   = 0x106
	CodeSensorNotFound = 0x20001
)

// Sensor is the image sensor behind an initialized Device
type Sensor interface {
	ID() SensorID
	SetFrameSize(Resolution) error
	SetVFlip(bool) error
	SetHMirror(bool) error
	SetBrightness(int) error
	SetSaturation(int) error
}

// Device is an initialized camera
type Device interface {
	Sensor() Sensor
	// Capture returns the next JPEG encoded frame
	Capture() ([]byte, error)
	Close() error
}

// Driver initializes camera hardware from a CaptureConfig
type Driver interface {
	Init(CaptureConfig) (Device, error)
}

// StatusCoder is implemented by driver errors that carry a platform status code
type StatusCoder interface {
	StatusCode() int
}

// InitError is returned when the driver fails to initialize. It is not retried: a failed sensor or
// memory handshake does not recover without a power cycle
type InitError struct {
	Code int
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("camera init failed with error 0x%x: %v", uint32(e.Code), e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func newInitError(err error) *InitError {
	code := CodeFail
	var sc StatusCoder
	if errors.As(err, &sc) {
		code = sc.StatusCode()
	}
	return &InitError{Code: code, Err: err}
}

// Options are applied after init
type Options struct {
	// Orientation is how the board mounts the sensor
	Orientation Orientation
	// StreamResolution is the live frame size used in JPEG mode. It lowers the built resolution after
	// init so streaming stays responsive; a value at or above the built one falls back to the next size
	// down. Zero value means QVGA
	StreamResolution Resolution
	Logger           lasercam.Logger
}

// Session owns an initialized camera
type Session struct {
	mtx    sync.Mutex
	device Device
	sensor Sensor
	cfg    CaptureConfig
	live   Resolution
}

// Init initializes the driver with cfg and applies the post-init layers in order: sensor tuning,
// board orientation and, for JPEG, the streaming resolution. No frame is captured before they are done.
func Init(driver Driver, cfg CaptureConfig, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Code: CodeInvalidArg, Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = lasercam.Discard
	}

	device, err := driver.Init(cfg)
	if err != nil {
		return nil, newInitError(err)
	}

	s := &Session{
		device: device,
		sensor: device.Sensor(),
		cfg:    cfg,
		live:   cfg.Resolution,
	}

	id := s.sensor.ID()
	if t, ok := TuningFor(id); ok {
		logOnError(logger, "vflip", s.sensor.SetVFlip(t.VFlip))
		logOnError(logger, "brightness", s.sensor.SetBrightness(t.Brightness))
		logOnError(logger, "saturation", s.sensor.SetSaturation(t.Saturation))
	}

	if opts.Orientation.VFlip {
		logOnError(logger, "vflip", s.sensor.SetVFlip(true))
	}
	if opts.Orientation.HMirror {
		logOnError(logger, "hmirror", s.sensor.SetHMirror(true))
	}

	if cfg.PixelFormat.Compressed() {
		stream := liveResolution(cfg.Resolution, opts.StreamResolution)
		err := s.sensor.SetFrameSize(stream)
		logOnError(logger, "framesize", err)
		if err == nil {
			s.live = stream
		}
	}

	return s, nil
}

// liveResolution is the streaming frame size. It only ever lowers the built resolution, which already
// accounts for the available frame buffer memory
func liveResolution(built, requested Resolution) Resolution {
	if requested == Resolution96x96 {
		requested = ResolutionQVGA
	}
	if requested < built {
		return requested
	}
	return built.Down()
}

func logOnError(logger lasercam.Logger, setting string, err error) {
	if err != nil {
		logger.Println("error setting sensor " + setting + ": " + err.Error())
	}
}

// Frame captures the next JPEG frame. Calls are serialized so only one caller holds the device
func (s *Session) Frame() ([]byte, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.cfg.PixelFormat.Compressed() {
		return nil, fmt.Errorf("capture is %s, not streamable", s.cfg.PixelFormat)
	}
	return s.device.Capture()
}

// Config returns the CaptureConfig the session was initialized with
func (s *Session) Config() CaptureConfig {
	return s.cfg
}

// SensorID returns the attached sensor
func (s *Session) SensorID() SensorID {
	return s.sensor.ID()
}

// LiveResolution returns the frame size currently set on the sensor
func (s *Session) LiveResolution() Resolution {
	return s.live
}

// Close releases the device
func (s *Session) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.device.Close()
}
