package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Write encodes c as lhetools.toml content.
func Write(w io.Writer, c *Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
