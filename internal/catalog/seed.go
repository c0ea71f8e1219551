package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultSeed []byte

// Seed is the on-disk shape of the catalog data asset.
type Seed struct {
	About      string         `yaml:"about"`
	Categories []CategorySeed `yaml:"categories" validate:"required,unique=Name,dive"`
	Team       []TeamSeed     `yaml:"team" validate:"dive"`
}

// CategorySeed lists the genres of one category in display order.
type CategorySeed struct {
	Name   string      `yaml:"name" validate:"required,category"`
	Genres []GenreSeed `yaml:"genres" validate:"unique=Name,dive"`
}

// GenreSeed lists the items of one genre. A genre may have no items.
type GenreSeed struct {
	Name  string     `yaml:"name" validate:"required,max=64"`
	Items []ItemSeed `yaml:"items" validate:"dive"`
}

// ItemSeed is a single recommendation.
type ItemSeed struct {
	Title   string `yaml:"title" validate:"required,max=200"`
	Image   string `yaml:"image" validate:"omitempty,assetpath"`
	Link    string `yaml:"link" validate:"omitempty,http_url"`
	Trailer string `yaml:"trailer" validate:"omitempty,http_url"`
}

// TeamSeed is one member of the team page.
type TeamSeed struct {
	Name    string `yaml:"name" validate:"required"`
	Roll    string `yaml:"roll"`
	Role    string `yaml:"role"`
	Image   string `yaml:"image" validate:"omitempty,assetpath"`
	Profile string `yaml:"profile" validate:"omitempty,http_url"`
}

// DefaultSeed decodes the catalog bundled with the binary.
func DefaultSeed() (*Seed, error) {
	return DecodeSeed(defaultSeed)
}

// LoadSeed reads a catalog from a YAML file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- operator-supplied catalog path
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	seed, err := DecodeSeed(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return seed, nil
}

// DecodeSeed parses YAML seed data. Unknown keys are rejected so typos in a
// hand-edited catalog surface at startup.
func DecodeSeed(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &seed, nil
}
