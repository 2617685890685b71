package motion

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfab/lasercam"
)

type recorder struct {
	events []string
	sleeps []time.Duration
	lines  []string
}

func (r *recorder) Println(v ...any) {
	r.lines = append(r.lines, fmt.Sprint(v...))
}

func (r *recorder) sleep(d time.Duration) {
	r.sleeps = append(r.sleeps, d)
}

type fakeActuator struct {
	name     string
	attachOK bool
	angle    int
	writes   []int
	rec      *recorder
}

func (a *fakeActuator) Attach() bool { return a.attachOK }

func (a *fakeActuator) Write(angle int) {
	a.angle = angle
	a.writes = append(a.writes, angle)
	a.rec.events = append(a.rec.events, fmt.Sprintf("%s=%d", a.name, angle))
}

func (a *fakeActuator) Read() int { return a.angle }

type fakeEmitter struct {
	rec *recorder
	on  bool
}

func (e *fakeEmitter) Set(on bool) {
	e.on = on
	e.rec.events = append(e.rec.events, fmt.Sprintf("laser=%t", on))
}

func newTestPlayer(t *testing.T, attachOK bool) (*Player, *recorder, *fakeActuator, *fakeActuator, *fakeEmitter) {
	t.Helper()
	rec := &recorder{}
	x := &fakeActuator{name: "x", attachOK: attachOK, rec: rec}
	y := &fakeActuator{name: "y", attachOK: attachOK, rec: rec}
	e := &fakeEmitter{rec: rec}

	p := NewPlayer(Config{
		X:       x,
		Y:       y,
		Emitter: e,
		Mapper:  turret,
		Cadence: DefaultCadence(),
		Path:    Triangle,
		Logger:  rec,
		Sleep:   rec.sleep,
	})
	return p, rec, x, y, e
}

func TestPlayerStart(t *testing.T) {
	p, rec, x, y, e := newTestPlayer(t, true)
	assert.Equal(t, StateIdle, p.State())

	p.Start()

	assert.Equal(t, StateRunning, p.State())
	assert.False(t, e.on)
	assert.Equal(t, []int{100}, x.writes)
	assert.Equal(t, []int{100}, y.writes)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 3 * time.Second}, rec.sleeps)
	assert.NotContains(t, rec.lines, lasercam.AttachFailedLine("X"))
}

func TestPlayerCycleIsDeterministic(t *testing.T) {
	p, rec, _, _, _ := newTestPlayer(t, true)
	p.Start()
	rec.events = nil

	p.Cycle()
	first := append([]string(nil), rec.events...)
	rec.events = nil

	p.Cycle()
	second := rec.events

	expected := []string{
		"laser=true",
		"x=100", "y=85",
		"x=107", "y=100",
		"x=92", "y=100",
		"x=100", "y=85",
	}
	assert.Equal(t, expected, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, p.Cycles())
}

func TestPlayerCycleCadence(t *testing.T) {
	p, rec, _, _, _ := newTestPlayer(t, true)
	p.Cycle()

	c := DefaultCadence()
	expected := []time.Duration{c.Settle, c.Dwell, c.Dwell, c.Dwell, c.Dwell, c.Restart}
	assert.Equal(t, expected, rec.sleeps)
}

func TestPlayerCycleLog(t *testing.T) {
	p, rec, _, _, _ := newTestPlayer(t, true)
	p.Cycle()

	var points []lasercam.Event
	for _, line := range rec.lines {
		e, ok := lasercam.ParseEvent(line)
		require.True(t, ok, "unparseable line %q", line)
		if e.Kind == lasercam.EventPoint {
			points = append(points, e)
		}
	}

	require.Len(t, points, 4)
	for i, e := range points {
		assert.Equal(t, i+1, e.Index)
		assert.Equal(t, 4, e.Total)
	}
	assert.Equal(t, lasercam.LaserOnLine(), rec.lines[0])
	assert.Equal(t, lasercam.SequenceDoneLine(), rec.lines[len(rec.lines)-1])
}

func TestPlayerMovesWhenAttachFails(t *testing.T) {
	p, rec, x, y, _ := newTestPlayer(t, false)
	p.Start()
	p.Cycle()

	assert.Contains(t, rec.lines, lasercam.AttachFailedLine("X"))
	assert.Contains(t, rec.lines, lasercam.AttachFailedLine("Y"))
	assert.Equal(t, StateRunning, p.State())
	assert.Len(t, x.writes, 5)
	assert.Len(t, y.writes, 5)
}

func TestPlayerSetPath(t *testing.T) {
	p, _, x, _, _ := newTestPlayer(t, true)

	p.SetPath(Path{{X: 1, Y: 1}})
	assert.Empty(t, x.writes)

	p.Cycle()
	assert.Equal(t, []int{160}, x.writes)

	p.Cycle()
	assert.Equal(t, []int{160, 160}, x.writes)
}

func TestShape(t *testing.T) {
	p, err := Shape("triangle")
	require.NoError(t, err)
	assert.Equal(t, Triangle, p)
	assert.True(t, p.Closed())

	p[0].X = 5
	assert.Equal(t, 0.0, Triangle[0].X)

	_, err = Shape("logo")
	assert.ErrorIs(t, err, ErrUnknownShape)

	assert.Equal(t, []string{"cross", "square", "triangle"}, ShapeNames())
	assert.False(t, Cross.Closed())
}
