package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"newspulse/internal/usecase/enrich"
)

// GazetteerFile is the YAML layout of a custom place list:
//
//	places:
//	  - India
//	  - Tamil Nadu
type GazetteerFile struct {
	Places []string `yaml:"places"`
}

// LoadGazetteer builds the country extractor's gazetteer. An empty path uses
// the built-in list; extra names are appended after the file's names.
// The path is expected to come from a trusted source (env or CLI flag).
func LoadGazetteer(path string, extra ...string) (*enrich.Gazetteer, error) {
	names := enrich.DefaultPlaceNames()

	if path != "" {
		// #nosec G304 -- path is provided by the operator, not request input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read gazetteer file: %w", err)
		}

		var file GazetteerFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse gazetteer file: %w", err)
		}
		names = file.Places
	}

	names = append(names, extra...)

	g, err := enrich.NewGazetteer(names)
	if err != nil {
		return nil, fmt.Errorf("gazetteer %q: %w", path, err)
	}
	return g, nil
}
