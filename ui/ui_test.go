package ui

import (
	"bytes"
	"context"
	"image"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/motion"
	"github.com/labfab/lasercam/sim"
	"github.com/labfab/lasercam/stream"
)

func TestStateNext(t *testing.T) {
	tests := []struct {
		from     state
		ok       bool
		expected state
	}{
		{stateNone, true, stateConnecting},
		{stateConnecting, true, stateStreaming},
		{stateStreaming, true, stateStreaming},
		{stateDisconnected, true, stateConnecting},
		{stateStreaming, false, stateDisconnected},
		{stateConnecting, false, stateDisconnected},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.next(tt.ok))
		})
	}
}

func TestAppendLog(t *testing.T) {
	v := NewViewerUI()

	assert.Equal(t, "", v.appendLog([]byte("Laser ")))
	assert.Equal(t, "Laser ON", v.appendLog([]byte("ON\r\n\r\n")))
	assert.Equal(t, "Laser ON\nStarting sequence", v.appendLog([]byte("Starting sequence\n")))

	for range maxLogLines + 10 {
		v.appendLog([]byte(".\n"))
	}
	assert.Len(t, v.lines, maxLogLines)
}

func TestWriteWithoutWindow(t *testing.T) {
	v := NewViewerUI()
	n, err := v.Write([]byte("WiFi connected\n"))
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, []string{"WiFi connected"}, v.lines)
}

func TestControllerWrapper(t *testing.T) {
	var buf bytes.Buffer
	ctl := &controllerWrapper{writer: &buf, lastCommandAt: newTimer("Last command")}

	names := motion.ShapeNames()
	require.NoError(t, ctl.SetShape(names[1]))
	require.NoError(t, ctl.Snapshot())
	require.NoError(t, ctl.Debug())

	assert.Equal(t, "P2\nS\nD\n", buf.String())
	assert.NotEqual(t, "Last command --:--", ctl.lastCommandAt.elapsedText(time.Now()))

	err := ctl.SetShape("circle")
	assert.ErrorIs(t, err, motion.ErrUnknownShape)
}

func TestTimerElapsedText(t *testing.T) {
	tm := newTimer("Last frame")
	assert.Equal(t, "Last frame --:--", tm.elapsedText(time.Now()))

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm.Set(start)
	assert.Equal(t, "Last frame 01:05", tm.elapsedText(start.Add(65*time.Second)))
}

func TestRate(t *testing.T) {
	r := &rate{}
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Zero(t, r.Take(start))

	for range 20 {
		r.Add()
	}
	assert.InDelta(t, 10.0, r.Take(start.Add(2*time.Second)), 1e-9)
	assert.Zero(t, r.Take(start.Add(3*time.Second)))
}

type stateRecorder struct {
	mtx    sync.Mutex
	states []state
	frames int
	size   image.Point
}

func (r *stateRecorder) onState(s state) {
	r.mtx.Lock()
	r.states = append(r.states, s)
	r.mtx.Unlock()
}

func (r *stateRecorder) onFrame(img image.Image) {
	r.mtx.Lock()
	r.frames++
	r.size = img.Bounds().Size()
	r.mtx.Unlock()
}

func (r *stateRecorder) snapshot() ([]state, int, image.Point) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]state(nil), r.states...), r.frames, r.size
}

func TestWatch(t *testing.T) {
	d := &sim.Driver{Sensor: camera.SensorOV2640, PSRAM: true, FrameInterval: 10 * time.Millisecond}
	session, err := camera.Init(d, camera.Builder{}.Build(true, true), camera.Options{})
	require.NoError(t, err)

	server := httptest.NewServer(stream.NewServer(session, nil).Handler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &stateRecorder{}
	done := make(chan struct{})
	go func() {
		watch(ctx, server.URL+"/stream", 10*time.Millisecond, rec.onFrame, rec.onState)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, frames, _ := rec.snapshot()
		return frames >= 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	states, _, size := rec.snapshot()
	require.GreaterOrEqual(t, len(states), 2)
	assert.Equal(t, []state{stateConnecting, stateStreaming}, states[:2])
	assert.Equal(t, image.Pt(320, 240), size)
}

func TestWatchUnreachable(t *testing.T) {
	server := httptest.NewServer(nil)
	url := server.URL + "/stream"
	server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &stateRecorder{}
	done := make(chan struct{})
	go func() {
		watch(ctx, url, 10*time.Millisecond, rec.onFrame, rec.onState)
		close(done)
	}()

	require.Eventually(t, func() bool {
		states, _, _ := rec.snapshot()
		return len(states) >= 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	states, frames, _ := rec.snapshot()
	assert.Equal(t, []state{stateConnecting, stateDisconnected, stateConnecting}, states[:3])
	assert.Zero(t, frames)
}
