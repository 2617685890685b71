package camera

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution is a sensor frame size. Values are ordered from smallest to largest
type Resolution int

const (
	Resolution96x96 Resolution = iota
	ResolutionQQVGA
	Resolution240x240
	ResolutionQVGA
	ResolutionCIF
	ResolutionHVGA
	ResolutionVGA
	ResolutionSVGA
	ResolutionXGA
	ResolutionHD
	ResolutionSXGA
	ResolutionUXGA
)

var resolutions = [...]struct {
	name          string
	width, height int
}{
	Resolution96x96:   {"96X96", 96, 96},
	ResolutionQQVGA:   {"QQVGA", 160, 120},
	Resolution240x240: {"240X240", 240, 240},
	ResolutionQVGA:    {"QVGA", 320, 240},
	ResolutionCIF:     {"CIF", 400, 296},
	ResolutionHVGA:    {"HVGA", 480, 320},
	ResolutionVGA:     {"VGA", 640, 480},
	ResolutionSVGA:    {"SVGA", 800, 600},
	ResolutionXGA:     {"XGA", 1024, 768},
	ResolutionHD:      {"HD", 1280, 720},
	ResolutionSXGA:    {"SXGA", 1280, 1024},
	ResolutionUXGA:    {"UXGA", 1600, 1200},
}

func (r Resolution) valid() bool {
	return r >= Resolution96x96 && r <= ResolutionUXGA
}

func (r Resolution) String() string {
	if !r.valid() {
		return "Unknown"
	}
	return resolutions[r].name
}

// Size returns the width and height in pixels
func (r Resolution) Size() (int, int) {
	if !r.valid() {
		return 0, 0
	}
	return resolutions[r].width, resolutions[r].height
}

// ParseResolution accepts a name like "QVGA" or a size like "320x240"
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r, res := range resolutions {
		if s == res.name || s == fmt.Sprintf("%dX%d", res.width, res.height) {
			return Resolution(r), nil
		}
	}
	return 0, fmt.Errorf("unknown resolution %q", s)
}

// Down returns the next smaller Resolution. The smallest Resolution is returned unchanged
func (r Resolution) Down() Resolution {
	if r <= Resolution96x96 {
		return Resolution96x96
	}
	return r - 1
}

// PixelFormat is the encoding of captured frames
type PixelFormat int

const (
	// PixelFormatJPEG is the compressed-stream encoding used for network streaming
	PixelFormatJPEG PixelFormat = iota
	// PixelFormatRGB565 is a raw per-pixel encoding used for on-device analysis
	PixelFormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatJPEG:
		return "JPEG"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return "Unknown"
	}
}

// Compressed reports whether frames are already JPEG encoded
func (f PixelFormat) Compressed() bool {
	return f == PixelFormatJPEG
}

// FrameBufferLocation is the memory frame buffers are allocated in
type FrameBufferLocation int

const (
	// FrameBufferFastMemory places buffers in external high-capacity memory (PSRAM)
	FrameBufferFastMemory FrameBufferLocation = iota
	// FrameBufferDefaultMemory places buffers in internal working memory (DRAM)
	FrameBufferDefaultMemory
)

func (l FrameBufferLocation) String() string {
	switch l {
	case FrameBufferFastMemory:
		return "PSRAM"
	case FrameBufferDefaultMemory:
		return "DRAM"
	default:
		return "Unknown"
	}
}

// GrabMode is the capture policy of the driver
type GrabMode int

const (
	// GrabWhenEmpty blocks until a buffer is free and fills it
	GrabWhenEmpty GrabMode = iota
	// GrabLatest always hands out the newest frame and drops stale buffers
	GrabLatest
)

func (g GrabMode) String() string {
	switch g {
	case GrabWhenEmpty:
		return "WhenEmpty"
	case GrabLatest:
		return "Latest"
	default:
		return "Unknown"
	}
}

const (
	DefaultXCLKFreqHz  = 20_000_000
	DefaultJPEGQuality = 12
	HighJPEGQuality    = 10
)

// NC marks a pin that is not connected
const NC = -1

// Pins is the DVP and SCCB wiring of a camera module
type Pins struct {
	PWDN  int
	Reset int
	XCLK  int
	SDA   int
	SCL   int
	D     [8]int
	VSYNC int
	HREF  int
	PCLK  int
	// LED is the flash LED, or NC
	LED int
}

// CaptureConfig is the configuration handed to the camera driver. It is built once at startup and not
// changed afterwards
type CaptureConfig struct {
	Resolution       Resolution
	PixelFormat      PixelFormat
	FrameBuffer      FrameBufferLocation
	FrameBufferCount int
	// JPEGQuality is 0-63, lower is better
	JPEGQuality int
	GrabMode    GrabMode
	XCLKFreqHz  int

	// Pins is the board wiring. It is set from the board profile, not by the Builder
	Pins *Pins
}

var ErrInvalidConfig = errors.New("invalid capture config")

// Validate checks the combinations the driver cannot handle
func (c CaptureConfig) Validate() error {
	if !c.Resolution.valid() {
		return fmt.Errorf("%w: unknown resolution %d", ErrInvalidConfig, c.Resolution)
	}
	if c.FrameBufferCount < 1 || c.FrameBufferCount > 2 {
		return fmt.Errorf("%w: frame buffer count %d", ErrInvalidConfig, c.FrameBufferCount)
	}
	if c.FrameBufferCount > 1 && c.FrameBuffer != FrameBufferFastMemory {
		return fmt.Errorf("%w: %d frame buffers require PSRAM", ErrInvalidConfig, c.FrameBufferCount)
	}
	if c.JPEGQuality < 0 || c.JPEGQuality > 63 {
		return fmt.Errorf("%w: jpeg quality %d", ErrInvalidConfig, c.JPEGQuality)
	}
	return nil
}

func (c CaptureConfig) String() string {
	return fmt.Sprintf("%s %s fb=%s x%d q=%d grab=%s",
		c.Resolution, c.PixelFormat, c.FrameBuffer, c.FrameBufferCount, c.JPEGQuality, c.GrabMode)
}
