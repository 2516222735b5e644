package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.TargetVersion == "" {
		return errors.New("target_version must be set")
	}
	if c.OutputSuffix == "" {
		return errors.New("output_suffix must be set, converted files would overwrite their sources")
	}
	if strings.ContainsAny(c.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix %q must not contain path separators", c.OutputSuffix)
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if strings.TrimSpace(c.Indent) != "" {
		return errors.New("indent must contain only whitespace")
	}
	for _, ext := range c.ImageExtensions {
		if ext == "" || ext == "." {
			return errors.New("image_extensions must not contain empty entries")
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q is not one of console, json", c.Logging.Format)
	}
	return nil
}
