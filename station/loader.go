package station

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset is the YAML file structure for a station catalog.
type Dataset struct {
	Version  int       `yaml:"version"`
	Stations []Station `yaml:"stations"`
}

// LoadFile reads and validates a YAML station dataset.
func LoadFile(path string) ([]Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML station dataset.
func Parse(data []byte) ([]Station, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if err := ValidateSet(ds.Stations); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return ds.Stations, nil
}
