package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/rulehub/pkg/search"
)

// Ordering overrides the built-in group ordering and denylist. Either
// list may be omitted to keep the default.
type Ordering struct {
	Canonical []string `yaml:"canonical"`
	Denylist  []string `yaml:"denylist"`
}

// LoadOrdering reads the ordering override file at path. A missing file
// yields the built-in defaults.
func LoadOrdering(path string) (Ordering, error) {
	defaults := Ordering{
		Canonical: search.DefaultCanonicalOrder,
		Denylist:  search.DefaultDenylist,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("config: read ordering file: %w", err)
	}

	var override Ordering
	if err := yaml.Unmarshal(data, &override); err != nil {
		return defaults, fmt.Errorf("config: parse ordering file: %w", err)
	}

	out := defaults
	if len(override.Canonical) > 0 {
		out.Canonical = override.Canonical
	}
	if len(override.Denylist) > 0 {
		out.Denylist = override.Denylist
	}
	return out, nil
}
