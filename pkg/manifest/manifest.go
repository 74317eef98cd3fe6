// Package manifest loads a multi-scope sync manifest: a YAML file listing
// channel-to-table pairs synced sequentially in one invocation.
package manifest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/rosterkit/rostersync/pkg/errors"
)

// DefaultTable is used when a scope entry names no table.
const DefaultTable = "members"

// Manifest lists the scopes to sync.
type Manifest struct {
	Scopes []Scope `yaml:"scopes"`
}

// Scope pairs a channel with the table it syncs into.
type Scope struct {
	Channel string `yaml:"channel"`
	Table   string `yaml:"table"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return m, nil
}

// Parse parses manifest YAML, applies defaults, and validates.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if len(m.Scopes) == 0 {
		return nil, fmt.Errorf("manifest lists no scopes")
	}
	for i := range m.Scopes {
		if m.Scopes[i].Channel == "" {
			return nil, fmt.Errorf("scope %d has no channel", i)
		}
		if m.Scopes[i].Table == "" {
			m.Scopes[i].Table = DefaultTable
		}
	}
	return &m, nil
}
