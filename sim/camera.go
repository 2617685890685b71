package sim

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"sync"
	"time"

	"github.com/labfab/lasercam/camera"
)

// StatusError is returned by a Driver configured to fail
type StatusError int

func (e StatusError) Error() string {
	return fmt.Sprintf("simulated camera failure 0x%x", uint32(e))
}

func (e StatusError) StatusCode() int {
	return int(e)
}

// Driver is a simulated camera. It renders a test scene and, when a Turret is attached, the laser spot
type Driver struct {
	Sensor camera.SensorID
	// PSRAM is reported by FastMemory
	PSRAM bool
	// FailCode makes Init fail with this status code
	FailCode int
	// FrameInterval paces Capture like a sensor running at a fixed frame rate
	FrameInterval time.Duration
	Turret        *Turret

	// Pins is the wiring the last Init was given
	Pins *camera.Pins
	// FlashPin is the pin set up by SetupFlash
	FlashPin int
	flash    bool
}

// FastMemory implements camera.Prober
func (d *Driver) FastMemory() bool {
	return d.PSRAM
}

func (d *Driver) Init(cfg camera.CaptureConfig) (camera.Device, error) {
	if d.FailCode != 0 {
		return nil, StatusError(d.FailCode)
	}
	d.Pins = cfg.Pins
	if cfg.Pins != nil && (cfg.Pins.XCLK == camera.NC || cfg.Pins.PCLK == camera.NC) {
		return nil, StatusError(camera.CodeInvalidArg)
	}
	if cfg.FrameBufferCount > 1 && cfg.FrameBuffer == camera.FrameBufferFastMemory && !d.PSRAM {
		return nil, StatusError(camera.CodeNoMem)
	}

	return &device{
		sensor:   &sensor{id: d.Sensor, size: cfg.Resolution},
		quality:  cfg.JPEGQuality,
		interval: d.FrameInterval,
		turret:   d.Turret,
	}, nil
}

// SetupFlash configures the flash LED pin. The LED is left off
func (d *Driver) SetupFlash(pin int) error {
	if pin == camera.NC {
		return fmt.Errorf("flash pin is not connected")
	}
	d.FlashPin = pin
	d.flash = true
	return nil
}

// FlashReady reports whether SetupFlash has been called
func (d *Driver) FlashReady() bool {
	return d.flash
}

type sensor struct {
	mtx        sync.Mutex
	id         camera.SensorID
	size       camera.Resolution
	vflip      bool
	hmirror    bool
	brightness int
	saturation int
}

func (s *sensor) ID() camera.SensorID { return s.id }

func (s *sensor) SetFrameSize(r camera.Resolution) error {
	if w, _ := r.Size(); w == 0 {
		return fmt.Errorf("unsupported frame size %d", r)
	}
	s.mtx.Lock()
	s.size = r
	s.mtx.Unlock()
	return nil
}

func (s *sensor) SetVFlip(b bool) error {
	s.mtx.Lock()
	s.vflip = b
	s.mtx.Unlock()
	return nil
}

func (s *sensor) SetHMirror(b bool) error {
	s.mtx.Lock()
	s.hmirror = b
	s.mtx.Unlock()
	return nil
}

func (s *sensor) SetBrightness(v int) error {
	if v < -2 || v > 2 {
		return fmt.Errorf("brightness %d out of range", v)
	}
	s.mtx.Lock()
	s.brightness = v
	s.mtx.Unlock()
	return nil
}

func (s *sensor) SetSaturation(v int) error {
	if v < -2 || v > 2 {
		return fmt.Errorf("saturation %d out of range", v)
	}
	s.mtx.Lock()
	s.saturation = v
	s.mtx.Unlock()
	return nil
}

type device struct {
	sensor   *sensor
	quality  int
	interval time.Duration
	turret   *Turret
	closed   bool
}

func (d *device) Sensor() camera.Sensor { return d.sensor }

func (d *device) Close() error {
	d.closed = true
	return nil
}

// Capture renders a frame at the sensor's current frame size
func (d *device) Capture() ([]byte, error) {
	if d.closed {
		return nil, fmt.Errorf("camera is closed")
	}
	if d.interval > 0 {
		time.Sleep(d.interval)
	}

	d.sensor.mtx.Lock()
	size, vflip, hmirror, brightness := d.sensor.size, d.sensor.vflip, d.sensor.hmirror, d.sensor.brightness
	d.sensor.mtx.Unlock()

	w, h := size.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := uint8(32 + 16*brightness)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{bg, bg, bg, 255}}, image.Point{}, draw.Src)

	grid := color.RGBA{bg + 24, bg + 24, bg + 24, 255}
	for x := 0; x < w; x += w / 8 {
		for y := 0; y < h; y++ {
			img.Set(x, y, grid)
		}
	}
	for y := 0; y < h; y += h / 8 {
		for x := 0; x < w; x++ {
			img.Set(x, y, grid)
		}
	}

	if d.turret != nil {
		nx, ny, on := d.turret.Spot()
		if on {
			// tilt up is negative y in image space
			px := int((nx + 1) / 2 * float64(w-1))
			py := int((1 - (ny+1)/2) * float64(h-1))
			if hmirror {
				px = w - 1 - px
			}
			if vflip {
				py = h - 1 - py
			}
			spot(img, px, py, max(2, w/80))
		}
	}

	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(d.quality)})
	if err != nil {
		return nil, fmt.Errorf("error encoding frame: %w", err)
	}
	return buf.Bytes(), nil
}

func spot(img *image.RGBA, cx, cy, r int) {
	red := color.RGBA{255, 32, 32, 255}
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.Set(x, y, red)
			}
		}
	}
}

// jpegQuality converts the sensor scale (0-63, lower is better) to image/jpeg's (1-100, higher is better)
func jpegQuality(q int) int {
	return max(1, min(100, 100-q*99/63))
}
