package sim

import (
	"bytes"
	"errors"
	"image/jpeg"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/motion"
	"github.com/labfab/lasercam/network"
)

var axes = motion.Mapper{
	X: motion.Axis{Min: 40, Max: 160},
	Y: motion.Axis{Min: 40, Max: 160},
}

func TestTurret(t *testing.T) {
	tur := NewTurret(axes)
	x, y, on := tur.Position()
	assert.Equal(t, 100, x)
	assert.Equal(t, 100, y)
	assert.False(t, on)

	sx := tur.ServoX()
	require.True(t, sx.Attach())
	sx.Write(160)
	tur.Set(true)

	nx, ny, on := tur.Spot()
	assert.InDelta(t, 1.0, nx, 1e-9)
	assert.InDelta(t, 0.0, ny, 1e-9)
	assert.True(t, on)
	assert.Equal(t, 160, sx.Read())
}

func TestTurretUnattachedIgnoresWrites(t *testing.T) {
	tur := NewTurret(axes)
	tur.FailAttach = true

	sy := tur.ServoY()
	assert.False(t, sy.Attach())
	sy.Write(40)
	assert.Equal(t, 100, sy.Read())
}

func TestDriverCapture(t *testing.T) {
	tur := NewTurret(axes)
	tur.Set(true)
	d := &Driver{Sensor: camera.SensorOV2640, PSRAM: true, Turret: tur}

	s, err := camera.Init(d, camera.Builder{}.Build(d.FastMemory(), true), camera.Options{})
	require.NoError(t, err)

	frame, err := s.Frame()
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(frame))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	r, g, _, _ := img.At(160, 120).RGBA()
	assert.Greater(t, r, g, "laser spot should be red at the center")
}

func TestDriverFailure(t *testing.T) {
	d := &Driver{FailCode: camera.CodeSensorNotFound}

	_, err := camera.Init(d, camera.Builder{}.Build(false, true), camera.Options{})

	var initErr *camera.InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, camera.CodeSensorNotFound, initErr.Code)
}

func TestDriverDoubleBufferNeedsPSRAM(t *testing.T) {
	d := &Driver{PSRAM: false}

	_, err := camera.Init(d, camera.Builder{}.Build(true, true), camera.Options{})

	var initErr *camera.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, camera.CodeNoMem, initErr.Code)
}

func TestLink(t *testing.T) {
	l := &Link{ReadyAfter: 2, Addr: netip.MustParseAddr("10.1.1.5")}
	assert.False(t, l.Connected(), "not connected before Connect")

	require.NoError(t, l.Connect(network.Credentials{SSID: "LabFab"}))
	assert.False(t, l.Connected())
	assert.True(t, l.Connected())
	assert.Equal(t, "10.1.1.5", l.LocalAddr().String())

	assert.Equal(t, "127.0.0.1", (&Link{}).LocalAddr().String())
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 100, jpegQuality(0))
	assert.Equal(t, 1, jpegQuality(63))
	assert.Greater(t, jpegQuality(10), jpegQuality(12))
}
