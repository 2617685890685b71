package motion

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/labfab/lasercam"
)

// Actuator is one channel of the positioning mechanism
type Actuator interface {
	// Attach binds the actuator to its output and reports success
	Attach() bool
	// Write commands an angle in degrees
	Write(angle int)
	// Read returns the last commanded angle
	Read() int
}

// Emitter is the binary laser output. machine.Pin satisfies it
type Emitter interface {
	Set(on bool)
}

// Cadence holds the delays of the playback loop
type Cadence struct {
	// Dwell is how long to hold each waypoint
	Dwell time.Duration
	// Step is reserved for interpolated moves and is not used by the playback loop
	Step time.Duration
	// Settle is the wait after turning the emitter on, before the first move
	Settle time.Duration
	// Restart is the wait after the last waypoint, before the next cycle
	Restart time.Duration
	// Attach is the wait after attaching the actuators, before homing
	Attach time.Duration
}

// DefaultCadence returns the timings the turret is calibrated for
func DefaultCadence() Cadence {
	return Cadence{
		Dwell:   3000 * time.Millisecond,
		Step:    15 * time.Millisecond,
		Settle:  1000 * time.Millisecond,
		Restart: 1000 * time.Millisecond,
		Attach:  500 * time.Millisecond,
	}
}

// State is the state of the Player
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	default:
		fallthrough
	case StateIdle:
		return "Idle"
	}
}

// Config has everything a Player needs. The Player owns these for its lifetime
type Config struct {
	X       Actuator
	Y       Actuator
	Emitter Emitter
	Mapper  Mapper
	Cadence Cadence
	Path    Path
	Logger  lasercam.Logger

	// Sleep blocks for the duration. Defaults to time.Sleep
	Sleep func(time.Duration)
}

// Player drives the actuators through a Path forever
type Player struct {
	x       Actuator
	y       Actuator
	emitter Emitter
	mapper  Mapper
	cadence Cadence
	path    Path
	log     lasercam.Logger
	sleep   func(time.Duration)

	state  atomic.Int32
	cycles atomic.Int64

	mtx  sync.Mutex
	next Path
}

// NewPlayer creates an Idle Player
func NewPlayer(cfg Config) *Player {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := cfg.Logger
	if logger == nil {
		logger = lasercam.Discard
	}

	return &Player{
		x:       cfg.X,
		y:       cfg.Y,
		emitter: cfg.Emitter,
		mapper:  cfg.Mapper,
		cadence: cfg.Cadence,
		path:    cfg.Path,
		log:     logger,
		sleep:   sleep,
	}
}

// Start attaches the actuators and homes them to the center. Attach failures are logged and do not stop
// the Player: moves are still sent to the unattached actuator
func (p *Player) Start() {
	p.emitter.Set(false)
	p.log.Println(lasercam.LaserReadyLine())

	if !p.x.Attach() {
		p.log.Println(lasercam.AttachFailedLine("X"))
	}
	if !p.y.Attach() {
		p.log.Println(lasercam.AttachFailedLine("Y"))
	}

	p.sleep(p.cadence.Attach)
	p.log.Println(lasercam.ServoReadyLine())

	p.MoveTo(Waypoint{})
	p.state.Store(int32(StateRunning))
}

// MoveTo maps the waypoint, commands both axes and dwells
func (p *Player) MoveTo(w Waypoint) Frame {
	f := p.mapper.MapWaypoint(w)

	p.x.Write(f.X)
	p.y.Write(f.Y)

	p.log.Println(lasercam.MoveLine(w.X, w.Y, f.X, f.Y))

	p.sleep(p.cadence.Dwell)
	return f
}

// Cycle plays the path once: emitter on, settle, then every waypoint in order
func (p *Player) Cycle() {
	p.mtx.Lock()
	if p.next != nil {
		p.path = p.next
		p.next = nil
	}
	p.mtx.Unlock()

	p.emitter.Set(true)
	p.log.Println(lasercam.LaserOnLine())
	p.sleep(p.cadence.Settle)

	p.log.Println(lasercam.SequenceStartLine())

	n := len(p.path)
	for i, w := range p.path {
		p.log.Println(lasercam.PointLine(i+1, n))
		p.MoveTo(w)
		p.log.Println(lasercam.PositionLine(p.x.Read(), p.y.Read()))
	}

	p.log.Println(lasercam.SequenceDoneLine())
	p.sleep(p.cadence.Restart)

	p.cycles.Add(1)
}

// Run starts the Player and cycles forever. It never returns
func (p *Player) Run() {
	p.Start()
	for {
		p.Cycle()
	}
}

// SetPath replaces the path from the next cycle on. It is safe to call from another goroutine
func (p *Player) SetPath(path Path) {
	p.mtx.Lock()
	p.next = path
	p.mtx.Unlock()
}

// State returns the current State
func (p *Player) State() State {
	return State(p.state.Load())
}

// Cycles returns the number of completed cycles. It is safe to call from another goroutine
func (p *Player) Cycles() int64 {
	return p.cycles.Load()
}
