package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Recognizer.CachePath, err = expandPath(c.Recognizer.CachePath); err != nil {
		return fmt.Errorf("recognizer.cache_path: %w", err)
	}

	if strings.TrimSpace(c.Style.FontFamily) != "" {
		if c.Style.FontFamily, err = expandPath(c.Style.FontFamily); err != nil {
			return fmt.Errorf("style.font_family: %w", err)
		}
	} else {
		c.Style.FontFamily = ""
	}

	c.Recognizer.Model = strings.TrimSpace(c.Recognizer.Model)
	c.Recognizer.Language = strings.ToLower(strings.TrimSpace(c.Recognizer.Language))
	c.Style.Position = strings.ToLower(strings.TrimSpace(c.Style.Position))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
