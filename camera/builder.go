package camera

// Builder turns the detected memory capability into a CaptureConfig
type Builder struct {
	// RawDualBuffer requests two frame buffers for raw capture. Set for the ESP32-S3 family
	RawDualBuffer bool
}

// Build is the only place capture settings adapt to the hardware. With fast memory the stream gets full
// resolution, two buffers and latest-frame grabbing; without it the resolution drops and a single
// buffer in working memory is used. Raw capture always uses a small square frame.
func (b Builder) Build(hasFastMemory, wantsCompressedStream bool) CaptureConfig {
	cfg := CaptureConfig{
		Resolution:       ResolutionUXGA,
		PixelFormat:      PixelFormatJPEG,
		FrameBuffer:      FrameBufferFastMemory,
		FrameBufferCount: 1,
		JPEGQuality:      DefaultJPEGQuality,
		GrabMode:         GrabWhenEmpty,
		XCLKFreqHz:       DefaultXCLKFreqHz,
	}

	if !wantsCompressedStream {
		cfg.PixelFormat = PixelFormatRGB565
		cfg.Resolution = Resolution240x240
		if b.RawDualBuffer {
			cfg.FrameBufferCount = 2
		}
		return cfg
	}

	if hasFastMemory {
		cfg.JPEGQuality = HighJPEGQuality
		cfg.FrameBufferCount = 2
		cfg.GrabMode = GrabLatest
		return cfg
	}

	cfg.Resolution = ResolutionSVGA
	cfg.FrameBuffer = FrameBufferDefaultMemory
	return cfg
}
