package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/taglme/typist/inject"
	"github.com/taglme/typist/typing"
)

// DefaultConfigPath is used when -config is not given.
const DefaultConfigPath = "config.yaml"

// Config represents the complete application configuration
type Config struct {
	Typing struct {
		WPM             int `yaml:"wpm"`
		Temperature     int `yaml:"temperature"`
		PauseMultiplier int `yaml:"pause_multiplier"`
		SettleDelayMs   int `yaml:"settle_delay_ms"`
	} `yaml:"typing"`
	Injection struct {
		Backend       string `yaml:"backend"`
		RetryAttempts int    `yaml:"retry_attempts"`
		RetryDelayMs  int    `yaml:"retry_delay_ms"`
	} `yaml:"injection"`
	Hotkeys struct {
		StartStop   string `yaml:"start_stop"`
		PauseResume string `yaml:"pause_resume"`
	} `yaml:"hotkeys"`
	Notifications struct {
		Enabled    bool `yaml:"enabled"`
		ShowState  bool `yaml:"show_state"`
		ShowErrors bool `yaml:"show_errors"`
		Sound      bool `yaml:"sound"`
	} `yaml:"notifications"`
	Logging struct {
		Dir        string `yaml:"dir"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logging"`
	Advanced struct {
		WatchConfig    bool `yaml:"watch_config"`
		SingleInstance bool `yaml:"single_instance"`
	} `yaml:"advanced"`
}

// RunOptions are the command line switches that are not configuration.
type RunOptions struct {
	ConfigPath  string
	Text        string
	SaveConfig  bool
	OpenLogs    bool
	ShowVersion bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	config := &Config{}

	config.Typing.WPM = typing.DefaultWPM
	config.Typing.Temperature = typing.DefaultTemperature
	config.Typing.PauseMultiplier = typing.DefaultPause
	config.Typing.SettleDelayMs = int(typing.DefaultSettleDelay / time.Millisecond)

	config.Injection.Backend = inject.BackendRobotgo
	config.Injection.RetryAttempts = 3
	config.Injection.RetryDelayMs = 500

	config.Hotkeys.StartStop = "CommandOrControl+Alt+V"
	config.Hotkeys.PauseResume = "CommandOrControl+Shift+P"

	config.Notifications.Enabled = true
	config.Notifications.ShowState = false
	config.Notifications.ShowErrors = true
	config.Notifications.Sound = false

	config.Logging.Dir = "logs"
	config.Logging.Level = "info"
	config.Logging.MaxSizeMB = 10
	config.Logging.MaxBackups = 5
	config.Logging.MaxAgeDays = 30
	config.Logging.Compress = true

	config.Advanced.WatchConfig = true
	config.Advanced.SingleInstance = true

	return config
}

// SettleDelay is the wait before the first character of a job.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Typing.SettleDelayMs) * time.Millisecond
}

// RetryDelay is the wait between injection backend retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Injection.RetryDelayMs) * time.Millisecond
}

// LoadConfig parses args, loads the config file they point at and applies
// the explicitly given flags on top of it.
func LoadConfig(args []string) (*Config, *RunOptions, error) {
	config := DefaultConfig()
	opts := &RunOptions{}

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	values := defineFlags(fs, config, opts)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if _, err := os.Stat(opts.ConfigPath); err == nil {
		fmt.Printf("Loading configuration from %s\n", opts.ConfigPath)
		if err := loadConfigFromFile(config, opts.ConfigPath); err != nil {
			return nil, nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if opts.ConfigPath != DefaultConfigPath {
		return nil, nil, fmt.Errorf("config file %s: %w", opts.ConfigPath, err)
	} else {
		fmt.Println("No config.yaml found, using defaults and command-line flags")
	}

	overrideWithFlags(config, fs, values)

	if err := validateConfig(config); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, opts, nil
}

// flagValues holds the flags that override config file settings.
type flagValues struct {
	wpm         int
	temperature int
	pause       int
	backend     string
}

func defineFlags(fs *flag.FlagSet, config *Config, opts *RunOptions) *flagValues {
	v := &flagValues{}
	fs.StringVar(&opts.ConfigPath, "config", DefaultConfigPath, "Path to the YAML configuration file")
	fs.IntVar(&v.wpm, "wpm", config.Typing.WPM, fmt.Sprintf("Typing speed in words per minute (%d-%d)", typing.MinWPM, typing.MaxWPM))
	fs.IntVar(&v.temperature, "temperature", config.Typing.Temperature, "Timing randomness (0-100)")
	fs.IntVar(&v.pause, "pause", config.Typing.PauseMultiplier, "Extra pause at word and sentence boundaries (0-100)")
	fs.StringVar(&v.backend, "backend", config.Injection.Backend, "Keyboard injection backend. Options: "+fmt.Sprint(inject.Backends()))
	fs.StringVar(&opts.Text, "text", "", "Type this text once after the settle delay and exit")
	fs.BoolVar(&opts.SaveConfig, "save-config", false, "Write the effective configuration to the config file and exit")
	fs.BoolVar(&opts.OpenLogs, "open-logs", false, "Open the logs directory and exit")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print the version and exit")
	return v
}

// loadConfigFromFile loads configuration from a YAML file
func loadConfigFromFile(config *Config, filename string) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// overrideWithFlags applies the flags given on the command line; flags left
// at their default do not clobber the file.
func overrideWithFlags(config *Config, fs *flag.FlagSet, v *flagValues) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wpm":
			config.Typing.WPM = v.wpm
		case "temperature":
			config.Typing.Temperature = v.temperature
		case "pause":
			config.Typing.PauseMultiplier = v.pause
		case "backend":
			config.Injection.Backend = v.backend
		}
	})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if config.Typing.WPM < typing.MinWPM || config.Typing.WPM > typing.MaxWPM {
		return fmt.Errorf("wpm must be between %d and %d, got: %d", typing.MinWPM, typing.MaxWPM, config.Typing.WPM)
	}

	if config.Typing.Temperature < typing.MinTemperature || config.Typing.Temperature > typing.MaxTemperature {
		return fmt.Errorf("temperature must be between %d and %d, got: %d", typing.MinTemperature, typing.MaxTemperature, config.Typing.Temperature)
	}

	if config.Typing.PauseMultiplier < typing.MinPause || config.Typing.PauseMultiplier > typing.MaxPause {
		return fmt.Errorf("pause multiplier must be between %d and %d, got: %d", typing.MinPause, typing.MaxPause, config.Typing.PauseMultiplier)
	}

	if minSettle := int(typing.MinSettleDelay / time.Millisecond); config.Typing.SettleDelayMs < minSettle {
		return fmt.Errorf("settle delay must be at least %d ms, got: %d", minSettle, config.Typing.SettleDelayMs)
	}

	if !inject.ValidBackend(config.Injection.Backend) {
		return fmt.Errorf("invalid injection backend: %s", config.Injection.Backend)
	}

	if config.Injection.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got: %d", config.Injection.RetryAttempts)
	}

	if config.Injection.RetryDelayMs < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %d", config.Injection.RetryDelayMs)
	}

	keyMapping := NewKeyMapping()
	if _, err := keyMapping.Parse(config.Hotkeys.StartStop); err != nil {
		return fmt.Errorf("start_stop hotkey: %w", err)
	}
	if _, err := keyMapping.Parse(config.Hotkeys.PauseResume); err != nil {
		return fmt.Errorf("pause_resume hotkey: %w", err)
	}
	if keyMapping.Same(config.Hotkeys.StartStop, config.Hotkeys.PauseResume) {
		return fmt.Errorf("start_stop and pause_resume hotkeys must differ, both are %s", config.Hotkeys.StartStop)
	}

	if _, err := zapcore.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.Logging.MaxSizeMB < 0 || config.Logging.MaxBackups < 0 || config.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must be non-negative")
	}

	return nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
