package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/labfab/lasercam/config"
	"github.com/labfab/lasercam/monitor"
	"github.com/labfab/lasercam/registry"
)

func runMonitor(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	port := fs.String("port", "", "Serial port. Defaults to the first USB serial port")
	baud := fs.Int("baud", 0, "Serial baud rate")
	boardName := fs.String("board", "", "Board name used in reports")
	broker := fs.String("mqtt", "", "MQTT broker, for example tcp://localhost:1883")
	registryAddr := fs.String("registry", "", "Registry address")
	verbose := fs.Bool("v", false, "Log lines that are not diagnostics")
	cfg := loadConfig(fs, args)

	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud > 0 {
		cfg.Serial.BaudRate = *baud
	}
	if *boardName != "" {
		cfg.Board = *boardName
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}
	if *registryAddr != "" {
		cfg.Registry.Addr = *registryAddr
	}

	m, closeFn, err := openMonitor(cfg, *verbose)
	if err != nil {
		log.Fatalf("error starting monitor: %v", err)
	}
	defer closeFn()

	r, err := openSerial(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer r.Close()

	log.Printf("monitoring %s (session %s)", cfg.Serial.Port, m.Session())
	err = m.Run(ctx, r)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("error reading serial port: %v", err)
	}
}

// openSerial opens the configured port, or the first USB serial port. The port is closed when the context
// is done so a blocked read returns
func openSerial(ctx context.Context, cfg *config.Config) (io.ReadWriteCloser, error) {
	if cfg.Serial.Port == "" {
		ports, err := monitor.SerialPorts()
		if err != nil {
			return nil, err
		}
		cfg.Serial.Port = ports[0]
	}

	p, err := monitor.OpenPort(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		p.Close()
	}()

	return p, nil
}

// openMonitor creates a Monitor with the reporters that are configured
func openMonitor(cfg *config.Config, verbose bool) (*monitor.Monitor, func(), error) {
	var reporters []monitor.Reporter
	closeFn := func() {}

	if cfg.MQTT.Broker != "" {
		clientID := "lasercam-" + uuid.NewString()[:8]
		mqttReporter, err := monitor.NewMQTTReporter(cfg.MQTT.Broker, clientID, cfg.EventTopic(cfg.Board))
		if err != nil {
			return nil, nil, err
		}
		reporters = append(reporters, mqttReporter)
		closeFn = mqttReporter.Close
	}

	if cfg.Registry.Addr != "" {
		reporters = append(reporters, monitor.NewRegistryReporter(registry.NewClient(cfg.Registry.Addr)))
	}

	return monitor.New(cfg.Board, verbose, reporters...), closeFn, nil
}
