package config

import (
	"fmt"
	"regexp"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateProfiles()
}

func (c *Config) validateOrganize() error {
	switch c.Organize.OnCollision {
	case CollisionRename, CollisionSkip:
		return nil
	default:
		return fmt.Errorf("organize.on_collision must be %q or %q, got %q", CollisionRename, CollisionSkip, c.Organize.OnCollision)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}

func (c *Config) validateProfiles() error {
	seen := make(map[string]struct{}, len(c.Profiles))
	for _, profile := range c.Profiles {
		if profile.Name == "" {
			return fmt.Errorf("profile with pattern %q has no name", profile.Pattern)
		}
		if _, dup := seen[profile.Name]; dup {
			return fmt.Errorf("duplicate profile name %q", profile.Name)
		}
		seen[profile.Name] = struct{}{}
		if profile.Pattern == "" {
			return fmt.Errorf("profile %q has an empty pattern", profile.Name)
		}
		if _, err := regexp.Compile(profile.Pattern); err != nil {
			return fmt.Errorf("profile %q has an invalid pattern: %w", profile.Name, err)
		}
	}
	return nil
}
