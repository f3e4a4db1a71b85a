package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/wobble/internal/viz"
)

// CanvasToSVG renders each non-blank cell as a text glyph. scale is the cell
// width in pixels; cells are twice as tall as they are wide.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale
	height := float64(canvas.Height) * scale * 2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s" font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, color, scale*1.6))

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r == ' ' || r == 0 {
				continue
			}
			x := float64(col)*scale + scale/2
			y := float64(row)*scale*2 + scale*1.5
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%s</text>
`, x, y, html.EscapeString(string(r))))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type Point struct{ X, Y float64 }

// PathToSVG draws a polyline through points, fitted to the given size with
// 10% padding. Screen y grows downward, matching surface offsets.
func PathToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
