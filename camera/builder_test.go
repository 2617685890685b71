package camera

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		builder    Builder
		fastMemory bool
		compressed bool
		expected   CaptureConfig
	}{
		{
			"StreamWithPSRAM",
			Builder{},
			true,
			true,
			CaptureConfig{
				Resolution:       ResolutionUXGA,
				PixelFormat:      PixelFormatJPEG,
				FrameBuffer:      FrameBufferFastMemory,
				FrameBufferCount: 2,
				JPEGQuality:      10,
				GrabMode:         GrabLatest,
				XCLKFreqHz:       20_000_000,
			},
		},
		{
			"StreamWithoutPSRAM",
			Builder{},
			false,
			true,
			CaptureConfig{
				Resolution:       ResolutionSVGA,
				PixelFormat:      PixelFormatJPEG,
				FrameBuffer:      FrameBufferDefaultMemory,
				FrameBufferCount: 1,
				JPEGQuality:      12,
				GrabMode:         GrabWhenEmpty,
				XCLKFreqHz:       20_000_000,
			},
		},
		{
			"Raw",
			Builder{},
			true,
			false,
			CaptureConfig{
				Resolution:       Resolution240x240,
				PixelFormat:      PixelFormatRGB565,
				FrameBuffer:      FrameBufferFastMemory,
				FrameBufferCount: 1,
				JPEGQuality:      12,
				GrabMode:         GrabWhenEmpty,
				XCLKFreqHz:       20_000_000,
			},
		},
		{
			"RawDualBuffer",
			Builder{RawDualBuffer: true},
			false,
			false,
			CaptureConfig{
				Resolution:       Resolution240x240,
				PixelFormat:      PixelFormatRGB565,
				FrameBuffer:      FrameBufferFastMemory,
				FrameBufferCount: 2,
				JPEGQuality:      12,
				GrabMode:         GrabWhenEmpty,
				XCLKFreqHz:       20_000_000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.builder.Build(tt.fastMemory, tt.compressed)
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestBuildNeverDoubleBuffersWithoutPSRAM(t *testing.T) {
	for _, b := range []Builder{{}, {RawDualBuffer: true}} {
		for _, fast := range []bool{true, false} {
			for _, compressed := range []bool{true, false} {
				cfg := b.Build(fast, compressed)
				if cfg.FrameBufferCount > 1 {
					assert.Equal(t, FrameBufferFastMemory, cfg.FrameBuffer, "%+v fast=%t compressed=%t", b, fast, compressed)
				}
				if compressed && !fast {
					assert.Equal(t, FrameBufferDefaultMemory, cfg.FrameBuffer)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Builder{}.Build(true, true)

	bad := valid
	bad.FrameBuffer = FrameBufferDefaultMemory
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = valid
	bad.FrameBufferCount = 3
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = valid
	bad.JPEGQuality = 64
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = valid
	bad.Resolution = Resolution(42)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestResolution(t *testing.T) {
	assert.True(t, ResolutionQVGA < ResolutionSVGA)
	assert.True(t, ResolutionSVGA < ResolutionUXGA)

	w, h := ResolutionUXGA.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	assert.Equal(t, ResolutionSXGA, ResolutionUXGA.Down())
	assert.Equal(t, Resolution96x96, Resolution96x96.Down())
	assert.Equal(t, "SVGA", ResolutionSVGA.String())
	assert.Equal(t, "Unknown", Resolution(-1).String())
}

func TestParseResolution(t *testing.T) {
	for _, in := range []string{"QVGA", "qvga", "320x240", " 320X240 "} {
		r, err := ParseResolution(in)
		require.NoError(t, err, in)
		assert.Equal(t, ResolutionQVGA, r)
	}

	r, err := ParseResolution("96x96")
	require.NoError(t, err)
	assert.Equal(t, Resolution96x96, r)

	_, err = ParseResolution("4K")
	assert.Error(t, err)
}

func TestParseSensorID(t *testing.T) {
	id, err := ParseSensorID("ov3660")
	require.NoError(t, err)
	assert.Equal(t, SensorOV3660, id)

	_, err = ParseSensorID("IMX219")
	assert.Error(t, err)
}

func TestStaticProbe(t *testing.T) {
	assert.True(t, StaticProbe(true).FastMemory())
	assert.False(t, ProbeFunc(func() bool { return false }).FastMemory())
}
