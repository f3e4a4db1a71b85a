package motion

import (
	"fmt"
	"math"
)

// Orbit moves a sprite around a circle of fixed radius, advancing the angle
// by a fixed step each tick and wrapping at a full revolution.
type Orbit struct {
	radius float64
	step   float64
	dir    Direction
	hand   Handedness
	start  float64

	angle float64
}

func NewOrbit(radius, step float64, dir Direction, hand Handedness) *Orbit {
	return NewOrbitFrom(0, radius, step, dir, hand)
}

// NewOrbitFrom starts the accumulator at a given angle in degrees.
func NewOrbitFrom(start, radius, step float64, dir Direction, hand Handedness) *Orbit {
	if step <= 0 {
		step = DefaultStep
	}
	o := &Orbit{radius: radius, step: step, dir: dir, hand: hand, start: wrap(start)}
	o.Reset()
	return o
}

func (o *Orbit) Name() string {
	if o.hand == Mirrored {
		return fmt.Sprintf("orbit-%s-mirrored", o.dir)
	}
	return "orbit-" + o.dir.String()
}

// Next emits the offset at the current angle, then moves the angle one step.
func (o *Orbit) Next() Transform {
	out := Offset(o.radius, o.angle, o.hand)
	o.angle = wrap(o.angle + o.dir.sign()*o.step)
	return out
}

func (o *Orbit) Reset() { o.angle = o.start }

// Angle returns the accumulator in degrees, always in [0, 360).
func (o *Orbit) Angle() float64 { return o.angle }

// Revolution is the number of ticks in one full turn.
func (o *Orbit) Revolution() int { return int(math.Round(FullTurn / o.step)) }

// Offset is the point on a circle of radius r at angle deg, with the
// handedness sign applied to both axes.
func Offset(r, deg float64, hand Handedness) Transform {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	s := hand.sign()
	return Transform{DX: s * r * cos, DY: s * r * sin}
}
