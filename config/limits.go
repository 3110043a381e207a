package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// WindowSpec bounds one pagination window: the default used when the caller
// omits a size, and the source's advertised maximum it is capped to.
type WindowSpec struct {
	Default int `json:"default" yaml:"default"`
	Max     int `json:"max" yaml:"max"`
}

// WindowLimits is the pagination window table for every relation kind the
// resolver serves. Keeping the table in one place keeps default-or-cap
// decisions out of the traversal logic.
type WindowLimits struct {
	Parents        WindowSpec `json:"parents" yaml:"parents"`
	Children       WindowSpec `json:"children" yaml:"children"`
	Ancestors      WindowSpec `json:"ancestors" yaml:"ancestors"`
	Descendants    WindowSpec `json:"descendants" yaml:"descendants"`
	DescendantList WindowSpec `json:"descendant_list" yaml:"descendant_list"`
}

// DefaultWindowLimits returns the built-in window table. The descendant
// list entry point gets a wider default than the generic descendants
// window.
func DefaultWindowLimits() WindowLimits {
	return WindowLimits{
		Parents:        WindowSpec{Default: 20, Max: 1000},
		Children:       WindowSpec{Default: 20, Max: 1000},
		Ancestors:      WindowSpec{Default: 50, Max: 5000},
		Descendants:    WindowSpec{Default: 50, Max: 5000},
		DescendantList: WindowSpec{Default: 100, Max: 5000},
	}
}

// LoadWindowLimits reads a window table from a YAML file. Entries missing
// from the file fall back to the built-in defaults.
func LoadWindowLimits(path string) (*WindowLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read limits config: %w", err)
	}

	limits := DefaultWindowLimits()
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return nil, fmt.Errorf("failed to parse limits config: %w", err)
	}

	if err := limits.Validate(); err != nil {
		return nil, err
	}

	return &limits, nil
}

// Validate checks every window spec for usable bounds.
func (l *WindowLimits) Validate() error {
	specs := map[string]WindowSpec{
		"parents":         l.Parents,
		"children":        l.Children,
		"ancestors":       l.Ancestors,
		"descendants":     l.Descendants,
		"descendant_list": l.DescendantList,
	}

	for name, spec := range specs {
		if spec.Default <= 0 {
			return &ConfigError{Field: name, Message: "window default must be positive"}
		}
		if spec.Max < spec.Default {
			return &ConfigError{Field: name, Message: "window max must be at least the default"}
		}
	}

	return nil
}
