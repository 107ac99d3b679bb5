// Package levels holds the isometric tile maps. Files under ./levels on
// disk take precedence over the embedded copies.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DiskDir is the directory checked before the embedded files.
var DiskDir = "levels"

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a grid of tile columns. Heights[z][x] is the column height in
// steps and Colors[z][x] names its palette entry.
type Level struct {
	Name     string            `yaml:"name"`
	Palette  map[string]string `yaml:"palette"`
	Heights  [][]int           `yaml:"heights"`
	Colors   []string          `yaml:"colors"`
	Spinners []Placement       `yaml:"spinners,omitempty"`
}

// Placement positions an object over a grid cell.
type Placement struct {
	X    int     `yaml:"x"`
	Z    int     `yaml:"z"`
	Lift float32 `yaml:"lift"`
}

func (l *Level) Width() int {
	if len(l.Heights) == 0 {
		return 0
	}
	return len(l.Heights[0])
}

func (l *Level) Depth() int { return len(l.Heights) }

// Cell returns the height and palette key of column (x, z).
func (l *Level) Cell(x, z int) (int, string) {
	return l.Heights[z][x], string(l.Colors[z][x])
}

// Validate checks that the grid is rectangular and every cell has a color.
func (l *Level) Validate() error {
	w := l.Width()
	if w == 0 {
		return fmt.Errorf("%w: %s: empty grid", ErrInvalidLevel, l.Name)
	}
	if len(l.Colors) != len(l.Heights) {
		return fmt.Errorf("%w: %s: %d color rows for %d height rows", ErrInvalidLevel, l.Name, len(l.Colors), len(l.Heights))
	}
	for z, row := range l.Heights {
		if len(row) != w {
			return fmt.Errorf("%w: %s: row %d has %d columns, want %d", ErrInvalidLevel, l.Name, z, len(row), w)
		}
		if len(l.Colors[z]) != w {
			return fmt.Errorf("%w: %s: color row %d has %d columns, want %d", ErrInvalidLevel, l.Name, z, len(l.Colors[z]), w)
		}
		for x, h := range row {
			if h < 0 {
				return fmt.Errorf("%w: %s: negative height at %d,%d", ErrInvalidLevel, l.Name, x, z)
			}
			if _, ok := l.Palette[string(l.Colors[z][x])]; !ok {
				return fmt.Errorf("%w: %s: no palette entry %q at %d,%d", ErrInvalidLevel, l.Name, l.Colors[z][x], x, z)
			}
		}
	}
	for i, s := range l.Spinners {
		if s.X < 0 || s.X >= w || s.Z < 0 || s.Z >= len(l.Heights) {
			return fmt.Errorf("%w: %s: spinner %d outside the grid", ErrInvalidLevel, l.Name, i)
		}
	}
	return nil
}

// Load reads and validates the named level. The .yaml extension is optional.
func Load(name string) (*Level, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join(DiskDir, file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	return Parse(strings.TrimSuffix(file, ".yaml"), data)
}

// Parse decodes a level. name is used when the file does not set one.
func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	for i, row := range lvl.Colors {
		lvl.Colors[i] = strings.ReplaceAll(row, " ", "")
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// List returns the names of the embedded levels.
func List() []string {
	entries, _ := fs.ReadDir(LevelsFS, ".")
	var out []string
	for _, e := range entries {
		if path.Ext(e.Name()) == ".yaml" {
			out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	slices.Sort(out)
	return out
}

// NameOf maps a file path reported by a watcher to a level name.
func NameOf(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func fileName(name string) string {
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return name
}
