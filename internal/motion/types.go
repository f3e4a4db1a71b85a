package motion

import (
	"fmt"
	"math"
)

const (
	// FullTurn is one revolution in degrees.
	FullTurn = 360.0

	DefaultAmplitude = 1.0
	DefaultRadius    = 6.0
	DefaultStep      = 3.0
	DefaultMax       = 30
)

// Transform is the visual write for one tick: a translation relative to the
// sprite's base position and a rotation in degrees.
type Transform struct {
	DX    float64
	DY    float64
	Angle float64
}

type Generator interface {
	// Next returns the transform for the current tick and advances.
	Next() Transform
	// Reset restores the generator to its construction state.
	Reset()
	Name() string
}

// Direction is the sign of the angular step.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) sign() float64 {
	if d == CounterClockwise {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// Handedness is the sign applied to computed orbit offsets.
type Handedness int

const (
	Standard Handedness = iota
	Mirrored
)

func (h Handedness) sign() float64 {
	if h == Mirrored {
		return -1
	}
	return 1
}

// Params holds the tunables shared by every behaviour.
type Params struct {
	Amplitude float64 // vertical units per triangle count
	Radius    float64 // orbit radius
	Step      float64 // orbit angular step in degrees
	Max       int     // triangle upper bound
}

func DefaultParams() Params {
	return Params{
		Amplitude: DefaultAmplitude,
		Radius:    DefaultRadius,
		Step:      DefaultStep,
		Max:       DefaultMax,
	}
}

func (p Params) Validate() error {
	if p.Amplitude < 0 || math.IsNaN(p.Amplitude) {
		return fmt.Errorf("%w: amplitude %v", ErrParameterBounds, p.Amplitude)
	}
	if p.Radius < 0 || math.IsNaN(p.Radius) {
		return fmt.Errorf("%w: radius %v", ErrParameterBounds, p.Radius)
	}
	if !(p.Step > 0 && p.Step <= FullTurn) {
		return fmt.Errorf("%w: step %v", ErrParameterBounds, p.Step)
	}
	if p.Max <= 0 {
		return fmt.Errorf("%w: max %d", ErrParameterBounds, p.Max)
	}
	return nil
}

// wrap normalizes a degree value into [0, 360).
func wrap(deg float64) float64 {
	deg = math.Mod(deg, FullTurn)
	if deg < 0 {
		deg += FullTurn
	}
	// math.Mod can hand back -0 or round up to exactly 360 after the add.
	if deg >= FullTurn || deg == 0 {
		return 0
	}
	return deg
}
