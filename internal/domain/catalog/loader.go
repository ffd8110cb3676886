package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultSeed []byte

type seedFile struct {
	Cards []CardProfile `yaml:"cards"`
}

// Load reads a catalog seed file from disk. Environment variables in the
// file (e.g. ${CATALOG_ENV}) are expanded before parsing, matching how the
// app config is loaded.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	return parse([]byte(os.ExpandEnv(string(data))))
}

// LoadDefault builds the catalog from the seed data compiled into the
// binary. It is used when no catalog path is configured.
func LoadDefault() (*Catalog, error) {
	return parse(defaultSeed)
}

// LoadOrDefault loads from path when one is given, otherwise falls back to
// the embedded seed.
func LoadOrDefault(path string) (*Catalog, error) {
	if path != "" {
		return Load(path)
	}
	return LoadDefault()
}

func parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(seed.Cards) == 0 {
		return nil, fmt.Errorf("catalog seed contains no cards")
	}
	return New(seed.Cards)
}
