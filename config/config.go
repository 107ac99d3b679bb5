// Package config loads the runtime settings from a yaml file, a .env file
// and PORP_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PORP_"

type Config struct {
	Window WindowConfig `yaml:"window"`
	Loop   LoopConfig   `yaml:"loop"`
	Log    LogConfig    `yaml:"log"`
	// Level is the level file loaded at startup, without extension.
	Level string `yaml:"level"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

type LoopConfig struct {
	Threads        int           `yaml:"threads"`
	TickRate       float64       `yaml:"tick_rate"`
	PauseOnBlur    bool          `yaml:"pause_on_blur"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{Title: "porp", Width: 1280, Height: 720, Resizable: true},
		Loop:   LoopConfig{Threads: 4, TickRate: 60, ReportInterval: time.Second},
		Log:    LogConfig{Level: "info", Format: "text"},
		Level:  "iso",
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load env %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	parse := func(name string, set func(string) error) {
		v, ok := lookup(envPrefix + name)
		if !ok {
			return
		}
		if err := set(v); err != nil {
			errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", envPrefix, name, v, err))
		}
	}

	parse("THREADS", func(v string) (err error) {
		c.Loop.Threads, err = strconv.Atoi(v)
		return err
	})
	parse("TICK_RATE", func(v string) (err error) {
		c.Loop.TickRate, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("PAUSE_ON_BLUR", func(v string) (err error) {
		c.Loop.PauseOnBlur, err = strconv.ParseBool(v)
		return err
	})
	parse("REPORT_INTERVAL", func(v string) (err error) {
		c.Loop.ReportInterval, err = time.ParseDuration(v)
		return err
	})
	parse("WIDTH", func(v string) (err error) {
		c.Window.Width, err = strconv.Atoi(v)
		return err
	})
	parse("HEIGHT", func(v string) (err error) {
		c.Window.Height, err = strconv.Atoi(v)
		return err
	})
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LEVEL", &c.Level)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.Loop.Threads < 1 {
		errs = append(errs, fmt.Errorf("config: loop.threads must be positive, got %d", c.Loop.Threads))
	}
	if c.Loop.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("config: loop.tick_rate must be positive, got %g", c.Loop.TickRate))
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		errs = append(errs, fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Level == "" {
		errs = append(errs, errors.New("config: level must be set"))
	}
	if err := c.Log.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
