// Package export renders canvases and recorded orbits as SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/solarsim/internal/storage"
	"github.com/san-kum/solarsim/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// the color of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = "#ffffff"
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type Point struct{ X, Y float64 }

// Path is one body's orbit projected onto the (x, y) plane.
type Path struct {
	Name   string
	Color  [3]float64
	Points []Point
}

// PathsFromTrajectory builds one Path per body in name order. Bodies
// missing from colors are drawn white.
func PathsFromTrajectory(traj storage.Trajectory, colors map[string][3]float64) []Path {
	paths := make([]Path, 0, len(traj))
	for _, name := range traj.Names() {
		rgb, ok := colors[name]
		if !ok {
			rgb = [3]float64{1, 1, 1}
		}
		samples := traj[name]
		pts := make([]Point, len(samples))
		for i, s := range samples {
			pts[i] = Point{s.Position.X, s.Position.Y}
		}
		paths = append(paths, Path{Name: name, Color: rgb, Points: pts})
	}
	return paths
}

// OrbitsToSVG draws every path on shared axes with equal x and y scale.
// Orbits are drawn in a dimmed body color and the last position as a dot in
// full color, labelled with the body name.
func OrbitsToSVG(paths []Path, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range paths {
		for _, pt := range p.Points {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	// square, padded bounds
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	px := float64(min(width, height)) / span
	toScreen := func(p Point) (float64, float64) {
		return float64(width)/2 + (p.X-cx)*px, float64(height)/2 - (p.Y-cy)*px
	}

	bg, _ := colorful.Hex(background)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	sorted := append([]Path(nil), paths...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, p := range sorted {
		if len(p.Points) == 0 {
			continue
		}
		c := colorful.Color{R: p.Color[0], G: p.Color[1], B: p.Color[2]}.Clamped()
		stroke := c.BlendLab(bg, 0.4).Clamped().Hex()

		if len(p.Points) > 1 {
			fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1" d="`, html.EscapeString(p.Name), stroke)
			for i, pt := range p.Points {
				x, y := toScreen(pt)
				if i == 0 {
					fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := toScreen(p.Points[len(p.Points)-1])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, c.Hex())
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"10\">%s</text>\n", x+5, y-5, c.Hex(), html.EscapeString(p.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
