package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDisplay()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSessions()
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.PausedText = strings.TrimSpace(c.Display.PausedText)
	if c.Display.PausedText == "" {
		c.Display.PausedText = defaultPausedText
	}
	c.Display.RunningText = strings.TrimSpace(c.Display.RunningText)
	if c.Display.RunningText == "" {
		c.Display.RunningText = defaultRunningText
	}
	if strings.TrimSpace(c.Display.TimeFormat) == "" {
		c.Display.TimeFormat = defaultTimeFormat
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SocketDir) == "" {
		c.Paths.SocketDir = defaultSocketDir()
	}
	if c.Paths.SocketDir, err = expandPath(c.Paths.SocketDir); err != nil {
		return fmt.Errorf("paths.socket_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSessions() {
	for i := range c.Sessions {
		c.Sessions[i].Name = strings.TrimSpace(c.Sessions[i].Name)
	}
}
