package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/KenGondor/CS2030/sim"
)

// FacilityFile represents the facilities YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FacilityFile struct {
	Version    string                `yaml:"version"`
	Default    string                `yaml:"default"`
	Facilities map[string]sim.Config `yaml:"facilities"`
}

// loadFacilityFile parses a facilities YAML file with strict field checking.
func loadFacilityFile(path string) (*FacilityFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facility file %s: %w", path, err)
	}

	// Parse YAML with strict field checking: typos must cause errors
	var f FacilityFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse facility file %s: %w", path, err)
	}
	return &f, nil
}

// GetFacilityConfig returns the named facility from the file at path.
// An empty name selects the file's default facility.
func GetFacilityConfig(path string, name string) (sim.Config, error) {
	f, err := loadFacilityFile(path)
	if err != nil {
		return sim.Config{}, err
	}
	if name == "" {
		name = f.Default
	}
	if name == "" {
		return sim.Config{}, fmt.Errorf("facility file %s: no facility selected and no default set", path)
	}
	cfg, ok := f.Facilities[name]
	if !ok {
		return sim.Config{}, fmt.Errorf("facility file %s: unknown facility %q", path, name)
	}
	return cfg, nil
}
