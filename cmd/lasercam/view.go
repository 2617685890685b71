package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/labfab/lasercam/ui"
)

func runView(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	url := fs.String("url", "", "Stream URL, for example http://192.168.1.20/stream")
	port := fs.String("port", "", "Serial port of the turret console")
	cfg := loadConfig(fs, args)

	viewer := ui.NewViewerUI()
	log.SetOutput(io.MultiWriter(os.Stderr, viewer))

	viewCfg := ui.Config{
		StreamURL:  *url,
		SerialPort: *port,
		BaudRate:   strconv.Itoa(cfg.Serial.BaudRate),
	}
	if viewCfg.SerialPort == "" {
		viewCfg.SerialPort = cfg.Serial.Port
	}

	viewer.Run(ctx, viewCfg, func(c ui.Config) (io.Writer, error) {
		if c.SerialPort == ui.SerialPortNone {
			return nil, nil
		}

		baud, err := strconv.Atoi(c.BaudRate)
		if err != nil {
			return nil, errors.New("invalid baud rate: " + c.BaudRate)
		}
		cfg.Serial.Port = c.SerialPort
		cfg.Serial.BaudRate = baud

		m, closeFn, err := openMonitor(cfg, true)
		if err != nil {
			return nil, err
		}

		p, err := openSerial(ctx, cfg)
		if err != nil {
			closeFn()
			return nil, err
		}

		go func() {
			defer closeFn()
			err := m.Run(ctx, p)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("error reading serial port: %v", err)
			}
		}()

		return p, nil
	})
}
