package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDex(); err != nil {
		return err
	}
	if err := c.validateTimings(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDex() error {
	if c.Dex.MinID < 1 {
		return errors.New("dex.min_id must be at least 1")
	}
	if c.Dex.MaxID < c.Dex.MinID {
		return errors.New("dex.max_id must be at least dex.min_id")
	}
	return nil
}

func (c *Config) validateTimings() error {
	return ensurePositiveMap(map[string]int{
		"pokeapi.timeout_seconds":       c.PokeAPI.TimeoutSeconds,
		"pokeapi.max_retries":           c.PokeAPI.MaxRetries,
		"input.debounce_ms":             c.Input.DebounceMS,
		"populate.batch_size":           c.Populate.BatchSize,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
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

func (c *Config) validateDisplay() error {
	if c.Display.Width < 20 {
		return errors.New("display.width must be at least 20 columns")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
