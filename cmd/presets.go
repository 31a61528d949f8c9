package cmd

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// presetFile represents the full presets.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type presetFile struct {
	Presets map[string]Workload `yaml:"presets"`
}

// loadPresets parses the embedded presets with strict field checking.
func loadPresets() (map[string]Workload, error) {
	var pf presetFile
	decoder := yaml.NewDecoder(bytes.NewReader(presetsYAML))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parse embedded presets: %w", err)
	}
	for name, w := range pf.Presets {
		w.Name = name
		pf.Presets[name] = w
	}
	return pf.Presets, nil
}

// PresetNames returns the names of the embedded presets in sorted order.
func PresetNames() ([]string, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadPreset returns the embedded workload called name.
func LoadPreset(name string) (*Workload, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	w, ok := presets[name]
	if !ok {
		names, _ := PresetNames()
		return nil, fmt.Errorf("unknown preset %q; valid: %v", name, names)
	}
	return &w, nil
}
