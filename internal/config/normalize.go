package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePokeAPI()
	c.normalizeInput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Socket) != "" {
		if c.Paths.Socket, err = expandPath(c.Paths.Socket); err != nil {
			return fmt.Errorf("paths.socket: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizePokeAPI() {
	c.PokeAPI.BaseURL = strings.TrimRight(strings.TrimSpace(c.PokeAPI.BaseURL), "/")
	if c.PokeAPI.BaseURL == "" {
		c.PokeAPI.BaseURL = defaultBaseURL
	}
	c.PokeAPI.Language = strings.ToLower(strings.TrimSpace(c.PokeAPI.Language))
	if c.PokeAPI.Language == "" {
		c.PokeAPI.Language = defaultLanguage
	}
	if c.PokeAPI.TimeoutSeconds <= 0 {
		c.PokeAPI.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.PokeAPI.MaxRetries <= 0 {
		c.PokeAPI.MaxRetries = defaultMaxRetries
	}
}

func (c *Config) normalizeInput() {
	c.Input.DeviceName = strings.TrimSpace(c.Input.DeviceName)
	if c.Input.DeviceName == "" && strings.TrimSpace(c.Input.DevicePath) == "" {
		c.Input.DeviceName = defaultInputDevice
	}
	c.Input.DevicePath = strings.TrimSpace(c.Input.DevicePath)
	if c.Input.DebounceMS <= 0 {
		c.Input.DebounceMS = defaultDebounceMS
	}
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
