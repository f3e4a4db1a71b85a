package motion

// Triangle is a triangle-wave counter bounded in [0, max]. It rises by step
// each tick until it reaches max, then falls back to 0 and repeats.
type Triangle struct {
	start, step, max int
	amplitude        float64

	counter int
	rising  bool
}

// NewTriangle clamps start into [0, max]. A non-positive step becomes 1 and
// a non-positive max becomes DefaultMax.
func NewTriangle(start, step, max int, amplitude float64) *Triangle {
	if max <= 0 {
		max = DefaultMax
	}
	if step <= 0 {
		step = 1
	}
	if start < 0 {
		start = 0
	}
	if start > max {
		start = max
	}
	t := &Triangle{start: start, step: step, max: max, amplitude: amplitude}
	t.Reset()
	return t
}

func (t *Triangle) Name() string { return "bounce" }

// Next emits the counter as an upward offset, then advances it.
func (t *Triangle) Next() Transform {
	out := Transform{DY: -float64(t.counter) * t.amplitude}
	t.advance()
	return out
}

func (t *Triangle) Reset() {
	t.counter = t.start
	t.rising = t.start < t.max
}

func (t *Triangle) Counter() int { return t.counter }
func (t *Triangle) Rising() bool { return t.rising }

// Period is the number of ticks before the sequence repeats for a step that
// divides max.
func (t *Triangle) Period() int { return 2 * t.max / t.step }

func (t *Triangle) advance() {
	if t.rising {
		t.counter += t.step
		if t.counter >= t.max {
			t.counter = t.max
			t.rising = false
		}
		return
	}
	t.counter -= t.step
	if t.counter <= 0 {
		t.counter = 0
		t.rising = true
	}
}
