package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

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

// PlayerSpec holds the movement tunables and collider of the player.
type PlayerSpec struct {
	Name                     string       `yaml:"name"`
	MoveSpeed                float64      `yaml:"move_speed"`
	JumpHeight               float64      `yaml:"jump_height"`
	TimeToJumpApex           float64      `yaml:"time_to_jump_apex"`
	AccelerationTimeAirborne float64      `yaml:"acceleration_time_airborne"`
	AccelerationTimeGrounded float64      `yaml:"acceleration_time_grounded"`
	MaxJumps                 int          `yaml:"max_jumps"`
	Collider                 ColliderSpec `yaml:"collider"`
	Rays                     RaySpec      `yaml:"rays"`
	CollisionMask            []string     `yaml:"collision_mask"`
	Color                    *YAMLColor   `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	return ParsePlayerSpec("player.yaml")
}

// ParsePlayerSpec loads and validates a player prefab.
func ParsePlayerSpec(filename string) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s PlayerSpec) Validate() error {
	switch {
	case s.MoveSpeed < 0:
		return fmt.Errorf("%w: move_speed must not be negative", ErrInvalidSpec)
	case s.JumpHeight <= 0:
		return fmt.Errorf("%w: jump_height must be positive", ErrInvalidSpec)
	case s.TimeToJumpApex <= 0:
		return fmt.Errorf("%w: time_to_jump_apex must be positive", ErrInvalidSpec)
	case s.AccelerationTimeAirborne < 0 || s.AccelerationTimeGrounded < 0:
		return fmt.Errorf("%w: acceleration times must not be negative", ErrInvalidSpec)
	case s.MaxJumps < 1:
		return fmt.Errorf("%w: max_jumps must be at least 1", ErrInvalidSpec)
	case s.Collider.Width <= 0 || s.Collider.Height <= 0:
		return fmt.Errorf("%w: collider must have a positive size", ErrInvalidSpec)
	}
	return nil
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return &spec, nil
}

// ColliderSpec sizes the player's box in world units.
type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RaySpec sets how many rays are cast along each edge. Values below two
// are raised by the controller.
type RaySpec struct {
	Horizontal int `yaml:"horizontal"`
	Vertical   int `yaml:"vertical"`
}

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

// ParseColor parses "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(hex, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", hex)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
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

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
