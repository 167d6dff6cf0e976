package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders a proportion chart of the given slices with percentage labels
// and a legend underneath.
func Pie(width, height int, slices []Slice, opts PieOpts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("svg: at least one slice required")
	}
	total := 0.0
	for _, s := range slices {
		if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return "", fmt.Errorf("svg: slice %q must be finite and non-negative", s.Label)
		}
		total += s.Value
	}
	if total <= 0 {
		return "", fmt.Errorf("svg: slices must have a positive total")
	}
	if width <= 0 {
		width = DefaultHeight
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if opts.Hole < 0 || opts.Hole >= 1 {
		return "", fmt.Errorf("svg: hole ratio must be in [0, 1)")
	}
	textColor := fallback(opts.TextColor, "#475569")

	legendHeight := 24.0
	cx := float64(width) / 2
	cy := (float64(height) - legendHeight) / 2
	radius := math.Min(cx, cy) - 8
	if radius <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}
	inner := radius * opts.Hole

	var b strings.Builder
	header(&b, width, height, fallback(opts.Title, "Pie chart"), fallback(opts.Description, "Proportions"), "pie")

	names := make([]string, len(slices))
	colors := make([]string, len(slices))
	angle := -math.Pi / 2
	for i, s := range slices {
		names[i] = s.Label
		colors[i] = paletteColor(i, s.Color)
		if s.Value == 0 {
			continue
		}
		share := s.Value / total
		sweep := share * 2 * math.Pi
		label := template.HTMLEscapeString(s.Label)

		if almostEqual(share, 1) {
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></circle>", cx, cy, radius, colors[i], label))
			if inner > 0 {
				b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#ffffff\" aria-hidden=\"true\"></circle>", cx, cy, inner))
			}
		} else {
			b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"%s\" stroke=\"#ffffff\" stroke-width=\"1\" aria-label=\"%s\"></path>", slicePath(cx, cy, radius, inner, angle, angle+sweep), colors[i], label))
		}

		mid := angle + sweep/2
		labelRadius := (radius + inner) / 2
		if inner == 0 {
			labelRadius = radius * 0.62
		}
		lx := cx + labelRadius*math.Cos(mid)
		ly := cy + labelRadius*math.Sin(mid)
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"#ffffff\" font-size=\"11\" font-weight=\"700\" text-anchor=\"middle\">%s</text>", lx, ly+4, formatShare(share)))
		angle += sweep
	}

	legend(&b, 8, float64(height)-8, names, colors, textColor)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func slicePath(cx, cy, outer, inner, start, end float64) string {
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	ox1, oy1 := cx+outer*math.Cos(start), cy+outer*math.Sin(start)
	ox2, oy2 := cx+outer*math.Cos(end), cy+outer*math.Sin(end)
	if inner <= 0 {
		return fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, ox1, oy1, outer, outer, large, ox2, oy2)
	}
	ix1, iy1 := cx+inner*math.Cos(start), cy+inner*math.Sin(start)
	ix2, iy2 := cx+inner*math.Cos(end), cy+inner*math.Sin(end)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		ox1, oy1, outer, outer, large, ox2, oy2, ix2, iy2, inner, inner, large, ix1, iy1)
}

func formatShare(share float64) string {
	pct := share * 100
	if almostEqual(pct, math.Round(pct)) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}
