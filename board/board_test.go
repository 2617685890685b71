package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfab/lasercam/camera"
)

func TestProfilesAreValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.NoError(t, p.Validate())
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("arduino-uno")
	assert.ErrorIs(t, err, ErrUnknownBoard)
}

func TestDefaultHasCamera(t *testing.T) {
	p, err := Lookup(Default)
	require.NoError(t, err)
	require.NotNil(t, p.Camera)
	assert.True(t, p.Probe().FastMemory())
	assert.Equal(t, []int{13, 14}, p.PullUps)
}

func TestBuilderByFamily(t *testing.T) {
	s3, err := Lookup("esp32s3-eye")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.Builder().Build(false, false).FrameBufferCount)

	eye, err := Lookup("esp-eye")
	require.NoError(t, err)
	assert.Equal(t, 1, eye.Builder().Build(false, false).FrameBufferCount)
	assert.Equal(t, camera.Orientation{}, eye.Orientation)
}

func TestTurretCenter(t *testing.T) {
	p, err := Lookup("pico-turret")
	require.NoError(t, err)
	require.NotNil(t, p.Turret)
	assert.Equal(t, 100, p.Axes.Center().X)
	assert.Equal(t, FamilyRP2040, p.Family)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Profile{Name: "empty"}.Validate())

	p, err := Lookup("pico-turret")
	require.NoError(t, err)
	p.Axes.X.Min = 170
	assert.Error(t, p.Validate())

	c, err := Lookup("ai-thinker")
	require.NoError(t, err)
	pins := *c.Camera
	pins.D[3] = NC
	c.Camera = &pins
	assert.Error(t, c.Validate())

	// the table entry is unchanged
	orig, _ := Lookup("ai-thinker")
	assert.NoError(t, orig.Validate())
}
