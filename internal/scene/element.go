package scene

import (
	"github.com/google/uuid"

	"github.com/san-kum/wobble/internal/motion"
)

// Element is a sprite drawn at a base position on the surface.
type Element struct {
	ID    string
	Glyph rune
	X, Y  float64
}

// NewElement gives the sprite a random ID when id is empty.
func NewElement(id string, glyph rune, x, y float64) Element {
	if id == "" {
		id = uuid.NewString()
	}
	if glyph == 0 {
		glyph = '*'
	}
	return Element{ID: id, Glyph: glyph, X: x, Y: y}
}

// Sprite is an element together with its latest transform.
type Sprite struct {
	Element
	motion.Transform
}

// Position is the base position moved by the current offset.
func (s Sprite) Position() (float64, float64) {
	return s.X + s.DX, s.Y + s.DY
}
