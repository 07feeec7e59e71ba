package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSessions(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if !containsTimeVerb(c.Display.TimeFormat) {
		return fmt.Errorf("display.time_format %q must contain at least one of %%H, %%M, %%S", c.Display.TimeFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateSessions() error {
	if len(c.Sessions) == 0 {
		return errors.New("at least one [[sessions]] entry is required")
	}
	for i, session := range c.Sessions {
		if session.Name == "" {
			return fmt.Errorf("sessions[%d].name must be set", i)
		}
		if session.DurationSeconds <= 0 {
			return fmt.Errorf("sessions[%d] (%s): duration_seconds must be positive", i, session.Name)
		}
		if session.TimeFormat != "" && !containsTimeVerb(session.TimeFormat) {
			return fmt.Errorf("sessions[%d] (%s): time_format %q must contain at least one of %%H, %%M, %%S", i, session.Name, session.TimeFormat)
		}
	}
	return nil
}

func containsTimeVerb(pattern string) bool {
	for _, verb := range []string{"%H", "%M", "%S"} {
		if strings.Contains(pattern, verb) {
			return true
		}
	}
	return false
}
