package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Area renders an area chart with one filled band per series over shared
// labels, and a horizontal legend above the plot.
func Area(width, height int, series []Series, labels []string, opts AreaOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: at least one series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	// tops[i][j] is the upper edge of band i at label j; lows is its lower edge.
	tops := make([][]float64, len(series))
	lows := make([][]float64, len(series))
	for i, s := range series {
		tops[i] = make([]float64, len(labels))
		lows[i] = make([]float64, len(labels))
		for j, v := range s.Values {
			if opts.Stacked && i > 0 {
				lows[i][j] = tops[i-1][j]
			}
			tops[i][j] = lows[i][j] + v
		}
	}

	var all []float64
	for i := range tops {
		all = append(all, tops[i]...)
		all = append(all, lows[i]...)
	}
	minVal, maxVal := bounds(all)
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	scale := chartHeight / (maxVal - minVal)

	step := 0.0
	if len(labels) > 1 {
		step = chartWidth / float64(len(labels)-1)
	}
	xAt := func(j int) float64 {
		if len(labels) == 1 {
			return padding + chartWidth/2
		}
		return padding + float64(j)*step
	}
	yAt := func(v float64) float64 {
		return padding + chartHeight - (v-minVal)*scale
	}

	var b strings.Builder
	header(&b, width, height, fallback(opts.Title, "Area chart"), fallback(opts.Description, "Trend data"), "area")
	grid(&b, padding, chartWidth, chartHeight, minVal, maxVal, tickCount, gridColor, axisColor)

	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-label=\"Eixos\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, padding+chartHeight))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding+chartHeight, padding+chartWidth, padding+chartHeight))
	b.WriteString("</g>")

	names := make([]string, len(series))
	colors := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
		colors[i] = paletteColor(i, s.Color)

		var top strings.Builder
		for j := range labels {
			cmd := "L"
			if j == 0 {
				cmd = "M"
			}
			top.WriteString(fmt.Sprintf("%s%.2f %.2f ", cmd, xAt(j), yAt(tops[i][j])))
		}
		var band strings.Builder
		band.WriteString(top.String())
		for j := len(labels) - 1; j >= 0; j-- {
			band.WriteString(fmt.Sprintf("L%.2f %.2f ", xAt(j), yAt(lows[i][j])))
		}
		band.WriteString("Z")

		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"%s\" fill-opacity=\"0.25\" stroke=\"none\" aria-hidden=\"true\"></path>", band.String(), colors[i]))
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\" aria-label=\"%s\"></path>", strings.TrimSpace(top.String()), colors[i], template.HTMLEscapeString(s.Name)))
	}

	for j, label := range labels {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", xAt(j), padding+chartHeight+14, axisColor, template.HTMLEscapeString(label)))
	}

	legendY := padding - 14
	if legendY < 12 {
		legendY = 12
	}
	legend(&b, padding, legendY, names, colors, axisColor)

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
