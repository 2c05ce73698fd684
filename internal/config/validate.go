package config

import (
	"errors"
	"fmt"
	"regexp"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegmenter(); err != nil {
		return err
	}
	if err := c.validateRecognizer(); err != nil {
		return err
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSegmenter() error {
	if c.Segmenter.MaxChars <= 0 {
		return errors.New("segmenter.max_chars must be positive")
	}
	return nil
}

func (c *Config) validateRecognizer() error {
	if c.Recognizer.Model == "" {
		return errors.New("recognizer.model must be set")
	}
	if c.Recognizer.CacheEnabled && c.Recognizer.CachePath == "" {
		return errors.New("recognizer.cache_path must be set when the transcript cache is enabled")
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.FontSize <= 0 {
		return errors.New("style.font_size must be positive")
	}
	if c.Style.BackgroundOpacity < 0 || c.Style.BackgroundOpacity > 1 {
		return errors.New("style.background_opacity must be between 0 and 1")
	}
	switch c.Style.Position {
	case "bottom", "top":
	default:
		return fmt.Errorf("style.position must be %q or %q", "bottom", "top")
	}
	for name, value := range map[string]string{
		"style.text_color":       c.Style.TextColor,
		"style.outline_color":    c.Style.OutlineColor,
		"style.background_color": c.Style.BackgroundColor,
	} {
		if !hexColorPattern.MatchString(value) {
			return fmt.Errorf("%s: invalid hex color %q", name, value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error")
	}
	return nil
}
