// Package democonfig loads the configuration for the circbufd demo
// binary: ring shape, workload size, and the metrics listen address.
package democonfig

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config is the demo binary's configuration, loaded from a TOML file on
// top of Default.
type Config struct {
	Ring    RingConfig    `toml:"ring"`
	Metrics MetricsConfig `toml:"metrics"`
}

// RingConfig describes the ring(s) the demo workload drives.
type RingConfig struct {
	Mode         string `toml:"mode"`          // "spsc" or "mpmc"
	Capacity     uint32 `toml:"capacity"`      // must be a power of two >= 2
	SlotSize     uint32 `toml:"slot_size"`     // bytes per payload
	Producers    int    `toml:"producers"`     // ignored (forced to 1) in spsc mode
	Consumers    int    `toml:"consumers"`     // ignored (forced to 1) in spsc mode
	MessageCount int    `toml:"message_count"` // total messages to push, across all producers
}

// MetricsConfig describes the demo's Prometheus endpoint.
type MetricsConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Ring: RingConfig{
			Mode:         "mpmc",
			Capacity:     1024,
			SlotSize:     16,
			Producers:    4,
			Consumers:    4,
			MessageCount: 200_000,
		},
		Metrics: MetricsConfig{
			ListenAddr: "127.0.0.1:9090",
		},
	}
}

// Load reads a TOML config file at path, falling back to Default when
// path is empty. Before parsing, it loads envPath (if present) into the
// process environment with godotenv, ignoring any error; no Config field
// is read from the environment, so those variables do not override values.
func Load(path, envPath string) (Config, error) {
	if envPath != "" {
		_ = godotenv.Load(envPath) // overlay is optional; absence is not an error
	}

	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
