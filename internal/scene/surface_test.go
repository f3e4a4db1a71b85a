package scene

import (
	"sync"
	"testing"

	"github.com/san-kum/wobble/internal/motion"
)

func TestGridApply(t *testing.T) {
	g := NewGrid(NewElement("a", 'o', 10, 5), NewElement("b", 'x', 20, 5))

	g.Apply("a", motion.Transform{DX: 1, DY: -2})
	g.Apply("ghost", motion.Transform{DX: 9})

	snap := g.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(snap))
	}
	if snap[0].ID != "a" || snap[1].ID != "b" {
		t.Errorf("placement order lost: %s, %s", snap[0].ID, snap[1].ID)
	}
	x, y := snap[0].Position()
	if x != 11 || y != 3 {
		t.Errorf("expected position (11,3), got (%v,%v)", x, y)
	}
	if g.Writes() != 1 {
		t.Errorf("expected 1 write, got %d", g.Writes())
	}
}

func TestGridSnapshotIsCopy(t *testing.T) {
	g := NewGrid(NewElement("a", 'o', 0, 0))
	snap := g.Snapshot()
	snap[0].DX = 42
	if g.Snapshot()[0].DX != 0 {
		t.Error("snapshot aliases grid state")
	}
}

func TestGridReset(t *testing.T) {
	g := NewGrid(NewElement("a", 'o', 0, 0))
	g.Apply("a", motion.Transform{Angle: 90})
	g.Reset()
	if g.Snapshot()[0].Transform != (motion.Transform{}) {
		t.Error("Reset did not clear transform")
	}
}

func TestGridConcurrentWriters(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	g := NewGrid()
	for _, id := range ids {
		g.Place(NewElement(id, 'o', 0, 0))
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				g.Apply(id, motion.Transform{DX: float64(i)})
				_ = g.Snapshot()
			}
		}(id)
	}
	wg.Wait()

	if g.Writes() != 2000 {
		t.Errorf("expected 2000 writes, got %d", g.Writes())
	}
	for _, s := range g.Snapshot() {
		if s.DX != 499 {
			t.Errorf("%s: expected final DX 499, got %v", s.ID, s.DX)
		}
	}
}

func TestNewElementDefaults(t *testing.T) {
	a := NewElement("", 0, 1, 2)
	b := NewElement("", 0, 1, 2)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
	if a.Glyph != '*' {
		t.Errorf("expected default glyph, got %q", a.Glyph)
	}
}

func TestRecorderAndFanout(t *testing.T) {
	rec := &Recorder{}
	g := NewGrid(NewElement("a", 'o', 0, 0))
	out := Fanout{rec, g}

	out.Apply("a", motion.Transform{DY: -1})
	out.Apply("a", motion.Transform{DY: -2})
	out.Apply("b", motion.Transform{DY: -3})

	if n := len(rec.Writes()); n != 3 {
		t.Errorf("expected 3 recorded writes, got %d", n)
	}
	got := rec.For("a")
	if len(got) != 2 || got[1].DY != -2 {
		t.Errorf("unexpected writes for a: %v", got)
	}
	if g.Snapshot()[0].DY != -2 {
		t.Errorf("grid did not receive fanout write")
	}
}
