// Package evalrun wires the vim core into scored, traced, and persisted
// evaluation runs: loading a challenge fixture, replaying keystrokes
// against it, and packaging the outcome for the CLI and the store.
package evalrun

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Challenge is a single vim-golf fixture: a start buffer, a reference
// keystroke sequence, and the text that sequence must produce.
type Challenge struct {
	ID         string `yaml:"id"`
	StartText  string `yaml:"start"`
	Keystrokes string `yaml:"keystrokes"`
	Expected   string `yaml:"expected"`
}

// LoadChallenge parses a .golf challenge fixture from disk. The challenge
// ID defaults to the file's base name (without extension) when the
// fixture omits one.
func LoadChallenge(path string) (*Challenge, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-supplied CLI input
	if err != nil {
		return nil, fmt.Errorf("reading challenge %s: %w", path, err)
	}

	var c Challenge
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing challenge %s: %w", path, err)
	}

	if c.ID == "" {
		base := filepath.Base(path)
		c.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &c, nil
}
