package viz

import (
	"math"

	"github.com/san-kum/wobble/internal/scene"
)

// Aspect stretches horizontal offsets so circles look round in cells that
// are about twice as tall as they are wide.
const Aspect = 2.0

// armGlyphs index by 45° sector, starting at 0° and turning clockwise on
// screen (y grows downward).
var armGlyphs = [8]rune{'-', '\\', '|', '/', '-', '\\', '|', '/'}

// ArmGlyph is the line character closest to the given angle in degrees.
func ArmGlyph(deg float64) rune {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return armGlyphs[int(math.Floor((deg+22.5)/45))%8]
}

// Draw rasterises the sprites. A rotated sprite gets a one-cell arm pointing
// along its angle.
func Draw(c *Canvas, sprites []scene.Sprite) {
	c.Clear()
	for _, s := range sprites {
		x := round(s.X + s.DX*Aspect)
		y := round(s.Y + s.DY)
		if s.Angle != 0 {
			sin, cos := math.Sincos(s.Angle * math.Pi / 180)
			c.Set(x+round(cos*Aspect), y+round(sin), ArmGlyph(s.Angle))
		}
		c.Set(x, y, s.Glyph)
	}
}
