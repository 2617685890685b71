package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/labfab/lasercam"
	"github.com/labfab/lasercam/board"
	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/firmware/commands"
	"github.com/labfab/lasercam/motion"
	"github.com/labfab/lasercam/network"
	"github.com/labfab/lasercam/sim"
	"github.com/labfab/lasercam/startup"
)

func runBench(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	boardName := fs.String("board", "", "Camera board profile")
	listen := fs.String("listen", "", "Stream server address")
	shape := fs.String("shape", "", "Path played by the turret")
	noPSRAM := fs.Bool("no-psram", false, "Simulate a board without PSRAM")
	raw := fs.Bool("raw", false, "Capture raw frames instead of a JPEG stream")
	speedup := fs.Float64("speedup", 0, "Run the turret cadence faster by this factor")
	cfg := loadConfig(fs, args)

	if *boardName != "" {
		cfg.Board = *boardName
	}
	if *listen != "" {
		cfg.Bench.Listen = *listen
	}
	if *shape != "" {
		cfg.Bench.Shape = *shape
	}
	if *noPSRAM {
		cfg.Bench.PSRAM = false
	}
	if *raw {
		cfg.Bench.Compressed = false
	}
	if *speedup > 0 {
		cfg.Bench.Speedup = *speedup
	}

	profile, err := board.Lookup(cfg.Board)
	if err != nil {
		log.Fatalf("error loading camera board: %v", err)
	}
	turretProfile, err := board.Lookup(cfg.Bench.TurretBoard)
	if err != nil {
		log.Fatalf("error loading turret board: %v", err)
	}
	if err := turretProfile.Validate(); err != nil {
		log.Fatalf("invalid turret board: %v", err)
	}
	resolution, err := camera.ParseResolution(cfg.Bench.Resolution)
	if err != nil {
		log.Fatalf("error parsing resolution: %v", err)
	}
	sensor, err := camera.ParseSensorID(cfg.Bench.Sensor)
	if err != nil {
		log.Fatalf("error parsing sensor: %v", err)
	}
	path, err := motion.Shape(cfg.Bench.Shape)
	if err != nil {
		log.Fatalf("error loading shape: %v", err)
	}

	logger := &benchLogger{out: log.New(os.Stdout, "", log.Ltime)}

	turret := sim.NewTurret(turretProfile.Axes)
	driver := &sim.Driver{
		Sensor:        sensor,
		PSRAM:         cfg.Bench.PSRAM,
		FrameInterval: time.Second / time.Duration(cfg.Bench.FrameRate),
		Turret:        turret,
	}

	node, err := startup.Camera(ctx, startup.CameraConfig{
		Profile:          profile,
		Driver:           driver,
		Prober:           driver,
		Compressed:       cfg.Bench.Compressed,
		StreamResolution: resolution,
		Link:             &sim.Link{},
		Credentials: network.Credentials{
			SSID:       cfg.WiFi.SSID,
			Passphrase: cfg.WiFi.Passphrase,
		},
		PollInterval: cfg.Bench.PollInterval,
		Listen:       cfg.Bench.Listen,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("camera startup failed: %v", err)
	}
	defer node.Session.Close()

	speed := cfg.Bench.Speedup
	player := motion.NewPlayer(motion.Config{
		X:       turret.ServoX(),
		Y:       turret.ServoY(),
		Emitter: turret,
		Mapper:  turretProfile.Axes,
		Cadence: motion.DefaultCadence(),
		Path:    path,
		Logger:  logger,
		Sleep: func(d time.Duration) {
			time.Sleep(time.Duration(float64(d) / speed))
		},
	})
	go player.Run()

	console := &benchConsole{
		Reader:      bufio.NewReader(os.Stdin),
		player:      player,
		turret:      turret,
		session:     node.Session,
		logger:      logger,
		snapshotDir: cfg.Bench.SnapshotDir,
	}
	go commands.Run(console)

	<-ctx.Done()
}

// benchLogger drops the per-move lines unless verbose
type benchLogger struct {
	out     *log.Logger
	verbose atomic.Bool
}

func (l *benchLogger) Println(v ...any) {
	if !l.verbose.Load() && len(v) == 1 {
		if line, ok := v[0].(string); ok {
			e, ok := lasercam.ParseEvent(line)
			if ok && (e.Kind == lasercam.EventMove || e.Kind == lasercam.EventPosition) {
				return
			}
		}
	}
	l.out.Println(v...)
}

// benchConsole runs console commands against the simulated rig
type benchConsole struct {
	*bufio.Reader

	player      *motion.Player
	turret      *sim.Turret
	session     *camera.Session
	logger      *benchLogger
	snapshotDir string
}

func (c *benchConsole) SetShape(name string) error {
	path, err := motion.Shape(name)
	if err != nil {
		return err
	}
	c.player.SetPath(path)
	log.Printf("shape %s from next cycle", name)
	return nil
}

func (c *benchConsole) Snapshot() error {
	frame, err := c.session.Frame()
	if err != nil {
		return fmt.Errorf("error capturing snapshot: %w", err)
	}

	name := filepath.Join(c.snapshotDir, "snapshot-"+uuid.NewString()[:8]+".jpg")
	err = os.WriteFile(name, frame, 0o644)
	if err != nil {
		return fmt.Errorf("error saving snapshot: %w", err)
	}

	log.Printf("saved %s", name)
	return nil
}

func (c *benchConsole) Debug() {
	x, y, on := c.turret.Position()
	log.Printf("%s cycles=%d X=%d Y=%d laser=%t frame=%s",
		c.player.State(), c.player.Cycles(), x, y, on, c.session.LiveResolution())
}

func (c *benchConsole) Verbose() {
	v := !c.logger.verbose.Load()
	c.logger.verbose.Store(v)
	log.Printf("verbose: %t", v)
}
