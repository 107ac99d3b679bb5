package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CameraSpec struct {
	Name       string      `yaml:"name"`
	Position   Vec3Spec    `yaml:"position"`
	Pitch      float32     `yaml:"pitch"` // degrees
	Yaw        float32     `yaml:"yaw"`   // degrees
	Projection string      `yaml:"projection"`
	FOV        float32     `yaml:"fov"`
	Near       float32     `yaml:"near"`
	Far        float32     `yaml:"far"`
	Controls   ControlSpec `yaml:"controls"`
}

// ControlSpec holds camera movement rates per second.
type ControlSpec struct {
	PanSpeed  float32 `yaml:"pan_speed"`
	TurnSpeed float32 `yaml:"turn_speed"` // degrees
	MinPitch  float32 `yaml:"min_pitch"`
	MaxPitch  float32 `yaml:"max_pitch"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TileSpec struct {
	Name      string   `yaml:"name"`
	Size      float32  `yaml:"size"`
	Step      float32  `yaml:"step"` // world height of one level
	MaxHeight int      `yaml:"max_height"`
	HoverLift float32  `yaml:"hover_lift"`
	Texture   Texture  `yaml:"texture"`
	Draw      DrawSpec `yaml:"draw"`
}

type Texture struct {
	Size   int       `yaml:"size"`
	Border int       `yaml:"border"`
	Edge   YAMLColor `yaml:"edge"`
}

type DrawSpec struct {
	Depth bool   `yaml:"depth"`
	Cull  string `yaml:"cull"`
}

func LoadTileSpec() (*TileSpec, error) {
	spec, err := LoadSpec[TileSpec]("tile.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SpinnerSpec struct {
	Name    string             `yaml:"name"`
	Script  string             `yaml:"script"`
	Size    float32            `yaml:"size"`
	Color   YAMLColor          `yaml:"color"`
	Texture Texture            `yaml:"texture"`
	Draw    DrawSpec           `yaml:"draw"`
	Params  map[string]float64 `yaml:"params"`
}

func LoadSpinnerSpec() (*SpinnerSpec, error) {
	spec, err := LoadSpec[SpinnerSpec]("spinner.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3Spec) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	col, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = col
	return nil
}

// NRGBA returns the color, or opaque white when unset.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func ParseColor(v string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
