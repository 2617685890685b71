package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaudRate     = 115200
	DefaultBoard        = "esp-eye"
	DefaultListen       = ":8080"
	DefaultRegistryAddr = "http://localhost:8081"
	DefaultShape        = "triangle"
	DefaultTopic        = "lasercam"
)

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

type MQTTConfig struct {
	Broker string `yaml:"broker"`
	// Topic is the prefix events are published under: <topic>/<board>/events
	Topic string `yaml:"topic"`
}

type RegistryConfig struct {
	Addr   string `yaml:"addr"`
	Listen string `yaml:"listen"`
}

type WiFiConfig struct {
	SSID       string `yaml:"ssid"`
	Passphrase string `yaml:"passphrase"`
}

// BenchConfig describes the simulated rig run by "lasercam bench"
type BenchConfig struct {
	Listen       string        `yaml:"listen"`
	PSRAM        bool          `yaml:"psram"`
	Compressed   bool          `yaml:"compressed"`
	Sensor       string        `yaml:"sensor"`
	Shape        string        `yaml:"shape"`
	SnapshotDir  string        `yaml:"snapshot_dir"`
	Resolution   string        `yaml:"resolution"`
	FrameRate    int           `yaml:"frame_rate"`
	TurretBoard  string        `yaml:"turret_board"`
	Speedup      float64       `yaml:"speedup"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Config is the top-level structure of lasercam.yaml
type Config struct {
	Board    string         `yaml:"board"`
	Serial   SerialConfig   `yaml:"serial"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Registry RegistryConfig `yaml:"registry"`
	WiFi     WiFiConfig     `yaml:"wifi"`
	Bench    BenchConfig    `yaml:"bench"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Board: DefaultBoard,
		Serial: SerialConfig{
			BaudRate: DefaultBaudRate,
		},
		MQTT: MQTTConfig{
			Topic: DefaultTopic,
		},
		Registry: RegistryConfig{
			Listen: ":8081",
		},
		WiFi: WiFiConfig{
			SSID: "lasercam",
		},
		Bench: BenchConfig{
			Listen:       DefaultListen,
			PSRAM:        true,
			Compressed:   true,
			Sensor:       "OV2640",
			Shape:        DefaultShape,
			SnapshotDir:  ".",
			Resolution:   "QVGA",
			FrameRate:    10,
			TurretBoard:  "pico-turret",
			Speedup:      1,
			PollInterval: 500 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Bench.FrameRate <= 0 {
		return fmt.Errorf("bench.frame_rate must be positive, got %d", c.Bench.FrameRate)
	}
	if c.Bench.Speedup <= 0 {
		return fmt.Errorf("bench.speedup must be positive, got %g", c.Bench.Speedup)
	}
	return nil
}

// EventTopic is the MQTT topic for events of a board
func (c *Config) EventTopic(board string) string {
	return c.MQTT.Topic + "/" + board + "/events"
}
