package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pingsocial/internal/domain"
)

// tribesFile is the on-disk shape of TRIBES_FILE:
//
//	tribes:
//	  - name: Tribe Red
//	    description: Red Tribe Description
type tribesFile struct {
	Tribes []domain.TribeSeed `yaml:"tribes"`
}

// LoadTribeSeeds returns the tribe catalogue to seed at startup. An empty path
// yields the built-in defaults.
func LoadTribeSeeds(path string) ([]domain.TribeSeed, error) {
	if path == "" {
		return domain.DefaultTribeSeeds(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-controlled
	if err != nil {
		return nil, fmt.Errorf("read tribes file: %w", err)
	}
	return ParseTribeSeeds(data)
}

// ParseTribeSeeds decodes a YAML tribe catalogue. Unknown keys, blank names
// and duplicate names are rejected.
func ParseTribeSeeds(data []byte) ([]domain.TribeSeed, error) {
	var f tribesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse tribes file: %w", err)
	}
	if len(f.Tribes) == 0 {
		return nil, fmt.Errorf("tribes file lists no tribes")
	}

	seen := make(map[string]struct{}, len(f.Tribes))
	for i := range f.Tribes {
		if err := f.Tribes[i].Validate(); err != nil {
			return nil, fmt.Errorf("tribe %d: %w", i, err)
		}
		if _, dup := seen[f.Tribes[i].Name]; dup {
			return nil, fmt.Errorf("duplicate tribe %q", f.Tribes[i].Name)
		}
		seen[f.Tribes[i].Name] = struct{}{}
	}
	return f.Tribes, nil
}
