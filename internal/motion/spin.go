package motion

// Spin rotates a sprite by one degree per tick.
type Spin struct {
	dir   Direction
	angle float64
}

func NewSpin(dir Direction) *Spin { return &Spin{dir: dir} }

func (s *Spin) Name() string { return "spin-" + s.dir.String() }

func (s *Spin) Next() Transform {
	out := Transform{Angle: s.angle}
	s.angle = wrap(s.angle + s.dir.sign())
	return out
}

func (s *Spin) Reset() { s.angle = 0 }

func (s *Spin) Angle() float64 { return s.angle }
