// Package samples bundles a handful of curated drips into the binary as the
// last content tier.
package samples

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

//go:embed samples.yaml
var raw []byte

type file struct {
	Drips []model.Drip `yaml:"drips"`
}

// Load parses the embedded sample drips. The file ships inside the binary, so
// a parse failure is a build defect, not a runtime condition.
func Load() ([]model.Drip, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse bundled samples: %w", err)
	}
	if len(f.Drips) == 0 {
		return nil, fmt.Errorf("bundled samples are empty")
	}
	return f.Drips, nil
}
