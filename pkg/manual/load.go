package manual

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load decodes a game-manual document from JSON.
func Load(r io.Reader) (*GameManual, error) {
	var m GameManual
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manual document: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads and decodes a game-manual document from a file.
func LoadFile(path string) (*GameManual, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manual document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// validate checks the structural minimum a manual document must carry.
// Group and rule contents are accepted as authored; malformed markup inside
// rule bodies degrades at render time rather than failing the load.
func (m *GameManual) validate() error {
	if m.Program == "" {
		return fmt.Errorf("manual document has no program")
	}
	if m.Season == "" {
		return fmt.Errorf("manual document has no season")
	}
	for i, group := range m.Groups {
		if group == nil {
			return fmt.Errorf("manual document group %d is null", i)
		}
		if group.Name == "" {
			return fmt.Errorf("manual document group %d has no name", i)
		}
		for j, rule := range group.Rules {
			if rule == nil {
				return fmt.Errorf("group %q rule %d is null", group.Name, j)
			}
			if rule.ID == "" {
				return fmt.Errorf("group %q rule %d has no id", group.Name, j)
			}
		}
	}
	return nil
}
