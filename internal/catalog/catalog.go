// Package catalog holds the initial parameters of the bodies a simulation
// starts from. Units follow the published ephemeris tables: kilometres,
// kilometres per second, kilograms, days and degrees.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidEntry = errors.New("catalog: invalid entry")
	ErrUnknownBody  = errors.New("catalog: unknown body")
)

// Entry describes one body. Type, Rotation and Texture are carried for
// display only.
type Entry struct {
	Type     string     `yaml:"type" toml:"type"`
	Radius   float64    `yaml:"radius" toml:"radius"`     // km
	Mass     float64    `yaml:"mass" toml:"mass"`         // kg
	Rotation float64    `yaml:"rotation" toml:"rotation"` // days
	Axis     float64    `yaml:"axis" toml:"axis"`         // axial tilt, degrees
	Texture  string     `yaml:"texture,omitempty" toml:"texture,omitempty"`
	Color    [3]float64 `yaml:"color" toml:"color"`
	Pos      [3]float64 `yaml:"pos" toml:"pos"`   // km
	Velo     [3]float64 `yaml:"velo" toml:"velo"` // km/s
}

// Catalog maps body name to its entry.
type Catalog map[string]Entry

type file struct {
	Bodies Catalog `yaml:"bodies" toml:"bodies"`
}

// Load reads a catalog from a YAML or TOML file, chosen by extension, and
// validates it.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Parse decodes catalog bytes. ext selects the format (".toml" or YAML for
// anything else).
func Parse(data []byte, ext string) (Catalog, error) {
	var f file
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	}
	if len(f.Bodies) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidEntry)
	}
	return f.Bodies, nil
}

// Save writes the catalog as YAML.
func Save(path string, cat Catalog) error {
	data, err := yaml.Marshal(file{Bodies: cat})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the physical invariants a simulation relies on.
func (c Catalog) Validate() error {
	names := c.Names()
	for _, name := range names {
		e := c[name]
		if name == "" {
			return fmt.Errorf("%w: empty body name", ErrInvalidEntry)
		}
		if !(e.Mass > 0) || math.IsInf(e.Mass, 0) {
			return fmt.Errorf("%w: %s: mass must be positive and finite, got %g", ErrInvalidEntry, name, e.Mass)
		}
		if !(e.Radius > 0) || math.IsInf(e.Radius, 0) {
			return fmt.Errorf("%w: %s: radius must be positive and finite, got %g", ErrInvalidEntry, name, e.Radius)
		}
		if !finite(e.Pos) || !finite(e.Velo) {
			return fmt.Errorf("%w: %s: non-finite pos %v or velo %v", ErrInvalidEntry, name, e.Pos, e.Velo)
		}
		if math.IsNaN(e.Axis) || math.IsInf(e.Axis, 0) {
			return fmt.Errorf("%w: %s: non-finite axis %g", ErrInvalidEntry, name, e.Axis)
		}
		for _, ch := range e.Color {
			if !(ch >= 0 && ch <= 1) {
				return fmt.Errorf("%w: %s: color component %g outside [0,1]", ErrInvalidEntry, name, ch)
			}
		}
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if c[names[i]].Pos == c[names[j]].Pos {
				return fmt.Errorf("%w: %s and %s share position %v", ErrInvalidEntry, names[i], names[j], c[names[i]].Pos)
			}
		}
	}
	return nil
}

func finite(v [3]float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Names returns the body names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subset returns a new catalog restricted to names.
func (c Catalog) Subset(names ...string) (Catalog, error) {
	out := make(Catalog, len(names))
	for _, name := range names {
		e, ok := c[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBody, name)
		}
		out[name] = e
	}
	return out, nil
}

// Clone returns an independent copy.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
