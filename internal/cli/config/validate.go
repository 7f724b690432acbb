package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats(), c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of: %s)",
			c.OutputFormat, strings.Join(OutputFormats(), ", "))
	}
	if c.Prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	return nil
}

// ValidateFixtures checks that every explicitly listed fixture file exists.
func (c *Config) ValidateFixtures() error {
	for _, f := range c.Fixtures {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return fmt.Errorf("fixture file does not exist: %s\nHint: check the path given to --fixture or the fixtures key", f)
		}
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
