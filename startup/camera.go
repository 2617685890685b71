package startup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/labfab/lasercam"
	"github.com/labfab/lasercam/board"
	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/network"
	"github.com/labfab/lasercam/stream"
)

// PullUpper is implemented by drivers that can configure board input pins
type PullUpper interface {
	PullUp(pin int) error
}

// FlashLighter is implemented by drivers that can drive the board's flash LED
type FlashLighter interface {
	SetupFlash(pin int) error
}

// CameraConfig has everything needed to bring the camera online
type CameraConfig struct {
	Profile board.Profile
	Driver  camera.Driver
	// Prober overrides the profile's static memory capability
	Prober camera.Prober
	// Compressed selects JPEG streaming. Raw capture is for on-device analysis and cannot be streamed
	Compressed bool
	// StreamResolution is the requested live frame size after init. Zero means QVGA. It never exceeds the built size
	StreamResolution camera.Resolution

	Link         network.Link
	Credentials  network.Credentials
	PollInterval time.Duration

	// Listen is the address of the stream server
	Listen string
	Logger lasercam.Logger
}

// CameraNode is a running camera
type CameraNode struct {
	Session *camera.Session
	Server  *stream.Server
	// Addr is the host:port the stream is reachable at
	Addr string
}

// Camera runs the startup sequence: probe, build the capture config, init the camera, bring up the
// network and finally start the stream server. A failed init is logged and returned; it is not retried
// and the network is never brought up
func Camera(ctx context.Context, cfg CameraConfig) (*CameraNode, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = lasercam.Discard
	}

	if cfg.Profile.Camera == nil {
		return nil, fmt.Errorf("board %q has no camera", cfg.Profile.Name)
	}

	if pu, ok := cfg.Driver.(PullUpper); ok {
		for _, pin := range cfg.Profile.PullUps {
			if err := pu.PullUp(pin); err != nil {
				logger.Println("error setting pull-up on pin " + strconv.Itoa(pin) + ": " + err.Error())
			}
		}
	}

	prober := cfg.Prober
	if prober == nil {
		prober = cfg.Profile.Probe()
	}

	captureCfg := cfg.Profile.Builder().Build(prober.FastMemory(), cfg.Compressed)
	pins := *cfg.Profile.Camera
	captureCfg.Pins = &pins
	logger.Println("Capture config: " + captureCfg.String())

	session, err := camera.Init(cfg.Driver, captureCfg, camera.Options{
		Orientation:      cfg.Profile.Orientation,
		StreamResolution: cfg.StreamResolution,
		Logger:           logger,
	})
	if err != nil {
		code := camera.CodeFail
		var initErr *camera.InitError
		if errors.As(err, &initErr) {
			code = initErr.Code
		}
		logger.Println(lasercam.CameraInitFailedLine(code))
		return nil, err
	}

	if fl, ok := cfg.Driver.(FlashLighter); ok && pins.LED != board.NC {
		if err := fl.SetupFlash(pins.LED); err != nil {
			logger.Println("error setting up flash on pin " + strconv.Itoa(pins.LED) + ": " + err.Error())
		}
	}

	if !captureCfg.PixelFormat.Compressed() {
		return &CameraNode{Session: session}, nil
	}

	ip := network.BringUp(cfg.Link, cfg.Credentials, cfg.PollInterval, logger)

	server := stream.NewServer(session, logger)
	bound, err := server.Start(ctx, cfg.Listen)
	if err != nil {
		_ = session.Close()
		return nil, err
	}

	addr := ip.String()
	if port := portOf(bound); port != 80 {
		addr = net.JoinHostPort(addr, strconv.Itoa(port))
	}

	logger.Println(lasercam.CameraReadyLine(addr))

	return &CameraNode{Session: session, Server: server, Addr: addr}, nil
}

func portOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
