package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"EnigmaNetz/Enigma-Go-DAQ/internal/daq"
	"EnigmaNetz/Enigma-Go-DAQ/internal/logger"
	"EnigmaNetz/Enigma-Go-DAQ/internal/module"
)

// Config represents the application configuration
type Config struct {
	// Logging configuration
	Logging struct {
		// Level is the minimum log level to output (debug, info, warn, error)
		Level string `json:"level" yaml:"level"`
		// File is the path to the log file. If empty, logs to stdout only
		File string `json:"file" yaml:"file"`
		// MaxSizeMB is the maximum size of log file before rotation
		MaxSizeMB int64 `json:"max_size_mb" yaml:"max_size_mb"`
		// LogRetentionDays is how long rotated log files are kept
		LogRetentionDays int `json:"log_retention_days" yaml:"log_retention_days"`
	} `json:"logging" yaml:"logging"`

	// DAQ configuration
	DAQ struct {
		// Module is the name of the capture backend (pcap, afpacket, ...)
		Module string `json:"module" yaml:"module"`
		// Input is the interface(s) or file the backend opens
		Input string `json:"input" yaml:"input"`
		// Snaplen is the maximum packet capture length
		Snaplen int `json:"snaplen" yaml:"snaplen"`
		// TimeoutMS is the acquire read timeout in milliseconds
		TimeoutMS uint `json:"timeout_ms" yaml:"timeout_ms"`
		// Mode is one of passive, inline, read-file
		Mode string `json:"mode" yaml:"mode"`
		// Flags are flag names or numeric bits (e.g. "promisc", "0x2")
		Flags []string `json:"flags" yaml:"flags"`
		// Variables are backend specific "key" or "key=value" entries,
		// applied in order
		Variables []string `json:"variables" yaml:"variables"`
		// MaxVariables caps the number of variables a config may hold
		MaxVariables int `json:"max_variables" yaml:"max_variables"`
	} `json:"daq" yaml:"daq"`
}

// LoadConfig loads configuration from a JSON or YAML file. The format is
// picked from the file extension; anything other than .yaml/.yml is JSON.
func LoadConfig(configPath string) (*Config, error) {
	// Set default config path if not provided
	if configPath == "" {
		configPath = "config.json"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config.setDefaults()
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 100 // 100MB default
	}
	if c.DAQ.Module == "" {
		c.DAQ.Module = "pcap"
	}
	if c.DAQ.Snaplen == 0 {
		c.DAQ.Snaplen = 1518
	}
	if c.DAQ.TimeoutMS == 0 {
		c.DAQ.TimeoutMS = 1000
	}
	if c.DAQ.Mode == "" {
		c.DAQ.Mode = "passive"
	}
	if c.DAQ.MaxVariables == 0 {
		c.DAQ.MaxVariables = 256
	}
}

// ApplyEnv overrides DAQ settings from DAQ_MODULE, DAQ_INPUT, DAQ_SNAPLEN
// and DAQ_MODE when they are set
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DAQ_MODULE"); v != "" {
		c.DAQ.Module = v
	}
	if v := os.Getenv("DAQ_INPUT"); v != "" {
		c.DAQ.Input = v
	}
	if v := os.Getenv("DAQ_SNAPLEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DAQ_SNAPLEN %q: %v", v, err)
		}
		c.DAQ.Snaplen = n
	}
	if v := os.Getenv("DAQ_MODE"); v != "" {
		c.DAQ.Mode = v
	}
	return nil
}

// InitializeLogging sets up logging based on config
func (c *Config) InitializeLogging() error {
	level, err := logger.ParseLogLevel(c.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}

	logConfig := logger.Config{
		LogLevel:   level,
		LogFile:    c.Logging.File,
		MaxSizeMB:  int(c.Logging.MaxSizeMB),
		MaxAgeDays: c.Logging.LogRetentionDays,
	}

	if err := logger.Initialize(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	return nil
}

// BuildDAQConfig resolves the configured module in reg and returns a DAQ
// config populated from the daq section
func (c *Config) BuildDAQConfig(reg *module.Registry, log *logger.Logger) (*daq.Config, error) {
	h, err := reg.Lookup(c.DAQ.Module)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DAQ module: %w", err)
	}

	mode, err := daq.ParseMode(c.DAQ.Mode)
	if err != nil {
		return nil, err
	}

	cfg, err := daq.New(h, daq.WithLogger(log), daq.WithMaxVariables(c.DAQ.MaxVariables))
	if err != nil {
		return nil, err
	}

	if err := cfg.SetInput(c.DAQ.Input); err != nil {
		return nil, err
	}
	if err := cfg.SetSnaplen(c.DAQ.Snaplen); err != nil {
		return nil, err
	}
	if err := cfg.SetTimeout(c.DAQ.TimeoutMS); err != nil {
		return nil, err
	}
	if err := cfg.SetMode(mode); err != nil {
		return nil, err
	}
	for _, name := range c.DAQ.Flags {
		flag, err := daq.ParseFlag(name)
		if err != nil {
			return nil, err
		}
		if err := cfg.SetFlag(flag); err != nil {
			return nil, err
		}
	}
	for _, arg := range c.DAQ.Variables {
		key, value, err := daq.ParseVariable(arg)
		if err != nil {
			return nil, err
		}
		if err := cfg.SetVariable(key, value); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
