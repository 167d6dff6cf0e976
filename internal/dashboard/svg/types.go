package svg

// Series is one named line of values plotted against shared labels.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// Slice is one share of a proportion chart.
type Slice struct {
	Label string
	Value float64
	Color string
}

// AreaOpts customises the area chart renderer.
type AreaOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	// Stacked draws each series on top of the previous ones.
	Stacked bool
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// PieOpts customises the proportion chart renderer.
type PieOpts struct {
	Title       string
	Description string
	TextColor   string
	// Hole is the inner radius ratio; zero renders a full pie.
	Hole float64
}

// Chart defaults.
const (
	DefaultWidth   = 720
	DefaultHeight  = 280
	DefaultPadding = 36.0
	DefaultTicks   = 5
)

var defaultPalette = []string{"#2563EB", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

func paletteColor(i int, override string) string {
	if override != "" {
		return override
	}
	return defaultPalette[i%len(defaultPalette)]
}
