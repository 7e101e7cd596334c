package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/vmath"
)

var (
	ErrInvalidScene = errors.New("invalid scene")
	ErrInvalidBody  = errors.New("invalid body")
)

// Body kinds accepted in scene files
const (
	KindPoint     = "point"
	KindCircle    = "circle"
	KindEllipse   = "ellipse"
	KindSquare    = "square"
	KindRectangle = "rectangle"
	KindTriangle  = "triangle"
)

// Duration is a time.Duration written as a Go duration string
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Scene is the sandbox setup: arena, grid scale, step and initial bodies
type Scene struct {
	Scale  float64    `toml:"scale"` // Cells per world unit
	Tick   Duration   `toml:"tick"`
	Width  float64    `toml:"width"`
	Height float64    `toml:"height"`
	Bodies []BodySpec `toml:"body"`
}

// BodySpec describes one collider; Size holds half-extents
type BodySpec struct {
	Kind     string     `toml:"kind"`
	Origin   [2]float64 `toml:"origin"`
	Size     [2]float64 `toml:"size"`
	Velocity [2]float64 `toml:"velocity"`
	Incline  bool       `toml:"incline,omitempty"`
	Invert   bool       `toml:"invert,omitempty"`
}

// Default returns the built-in scene used when no file is given
func Default() Scene {
	return Scene{
		Scale:  0.25,
		Tick:   Duration(33 * time.Millisecond),
		Width:  120,
		Height: 60,
		Bodies: []BodySpec{
			{Kind: KindCircle, Origin: [2]float64{10, 10}, Size: [2]float64{3, 3}, Velocity: [2]float64{8, 5}},
			{Kind: KindEllipse, Origin: [2]float64{40, 30}, Size: [2]float64{6, 2.5}, Velocity: [2]float64{-6, 4}},
			{Kind: KindSquare, Origin: [2]float64{60, 20}, Size: [2]float64{4, 4}},
			{Kind: KindRectangle, Origin: [2]float64{90, 45}, Size: [2]float64{8, 2}, Velocity: [2]float64{-4, -3}},
			{Kind: KindTriangle, Origin: [2]float64{30, 50}, Size: [2]float64{5, 4}, Velocity: [2]float64{7, -2}, Incline: true},
			{Kind: KindTriangle, Origin: [2]float64{100, 12}, Size: [2]float64{4, 4}, Invert: true},
			{Kind: KindPoint, Origin: [2]float64{70, 40}, Velocity: [2]float64{-9, 6}},
		},
	}
}

// TickDuration returns the fixed step
func (s Scene) TickDuration() time.Duration {
	return time.Duration(s.Tick)
}

// Validate checks the arena, scale and every body
func (s Scene) Validate() error {
	if !positive(s.Scale) {
		return fmt.Errorf("%w: scale %v must be finite and positive", ErrInvalidScene, s.Scale)
	}
	if s.Tick <= 0 {
		return fmt.Errorf("%w: tick %v must be positive", ErrInvalidScene, s.TickDuration())
	}
	if !positive(s.Width) || !positive(s.Height) {
		return fmt.Errorf("%w: arena %vx%v must be finite and positive", ErrInvalidScene, s.Width, s.Height)
	}
	for i, b := range s.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks kind and that every number is finite with non-negative size
func (b BodySpec) Validate() error {
	switch b.Kind {
	case KindPoint, KindCircle, KindEllipse, KindSquare, KindRectangle, KindTriangle:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBody, b.Kind)
	}
	for _, v := range [...]float64{b.Origin[0], b.Origin[1], b.Size[0], b.Size[1], b.Velocity[0], b.Velocity[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %s", ErrInvalidBody, b.Kind)
		}
	}
	if b.Size[0] < 0 || b.Size[1] < 0 {
		return fmt.Errorf("%w: negative size %v", ErrInvalidBody, b.Size)
	}
	return nil
}

// Shape builds the collider; circle and square use Size[0]
func (b BodySpec) Shape() (collision.Shape, error) {
	if err := b.Validate(); err != nil {
		return collision.Shape{}, err
	}
	origin := vmath.V2(b.Origin[0], b.Origin[1])
	size := vmath.V2(b.Size[0], b.Size[1])

	switch b.Kind {
	case KindPoint:
		return collision.NewPoint(origin), nil
	case KindCircle:
		return collision.NewCircle(origin, size.X), nil
	case KindEllipse:
		return collision.NewEllipse(origin, size), nil
	case KindSquare:
		return collision.NewSquare(origin, size.X), nil
	case KindRectangle:
		return collision.NewRectangle(origin, size), nil
	default:
		return collision.NewTriangle(origin, size, b.Incline, b.Invert), nil
	}
}

// VelocityVec returns the initial velocity
func (b BodySpec) VelocityVec() vmath.Vec2 {
	return vmath.V2(b.Velocity[0], b.Velocity[1])
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
