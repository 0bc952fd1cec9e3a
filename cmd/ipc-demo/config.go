package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the demo settings, loadable from a YAML file.
type Config struct {
	// OutputPath is the file the broker writes worker lines into.
	OutputPath string `yaml:"output_path"`

	// EventLogPath captures protocol events in CBOR format (optional).
	EventLogPath string `yaml:"event_log_path"`

	// Lines is the number of lines the worker sends.
	Lines int `yaml:"lines"`

	// MaxMessageSize bounds one encoded frame body in bytes.
	MaxMessageSize uint32 `yaml:"max_message_size"`

	// Verbose enables debug-level console logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the demo defaults.
func DefaultConfig() Config {
	return Config{
		OutputPath:     "ipc-demo-output.txt",
		Lines:          100,
		MaxMessageSize: 65536,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent
// fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Lines <= 0 {
		cfg.Lines = DefaultConfig().Lines
	}
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = DefaultConfig().MaxMessageSize
	}
	return cfg, nil
}
