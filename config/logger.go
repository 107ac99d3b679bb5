package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logger writing to stderr.
func NewLogger(c LogConfig) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if err := ApplyLog(l, c); err != nil {
		return nil, err
	}
	return l, nil
}

// ApplyLog updates the level and formatter of an existing logger.
func ApplyLog(l *logrus.Logger, c LogConfig) error {
	if err := c.validate(); err != nil {
		return err
	}
	lvl, _ := logrus.ParseLevel(c.Level)
	l.SetLevel(lvl)
	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (c LogConfig) validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Format {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("config: log.format %q: want text or json", c.Format)
}
