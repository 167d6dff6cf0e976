package dashboard

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ryanfelix147-netizen/GT/internal/dashboard/svg"
)

// Page identifies one of the four dashboard views.
type Page string

const (
	PageOverview  Page = "overview"
	PageProducts  Page = "products"
	PageMarketing Page = "marketing"
	PageLogistics Page = "logistics"
)

// Pages lists the navigation options in display order.
var Pages = []Page{PageOverview, PageProducts, PageMarketing, PageLogistics}

// ParsePage maps a query value to a Page. Unknown values select the overview.
func ParsePage(raw string) Page {
	p := Page(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Pages {
		if p == known {
			return p
		}
	}
	return PageOverview
}

// Label is the navigation caption.
func (p Page) Label() string {
	switch p {
	case PageProducts:
		return "📦 Performance Produtos"
	case PageMarketing:
		return "🎯 Marketing & Ads"
	case PageLogistics:
		return "🚚 Logística Droplatam"
	default:
		return "📊 Overview Geral"
	}
}

// Heading is the title shown above the view content.
func (p Page) Heading() string {
	switch p {
	case PageProducts:
		return "Análise por SKU"
	case PageMarketing:
		return "Métricas de Tráfego"
	case PageLogistics:
		return "Sincronização Cloud"
	default:
		return "Performance Operacional"
	}
}

// Templates selected by Render.
const (
	LoginTemplate     = "pages/login.html"
	DashboardTemplate = "pages/dashboard.html"
)

// Literal display values. The deltas and ROI are not derived from the data.
const (
	ROIFigure    = "3.2x"
	DeltaRevenue = "+14%"
	DeltaProfit  = "+9%"
	DeltaAdSpend = "-5%"
	DeltaROI     = "+0.2"
)

// ChartRenderer abstracts SVG chart rendering for the views.
type ChartRenderer interface {
	Area(width, height int, series []svg.Series, labels []string, opts svg.AreaOpts) (template.HTML, error)
	Bars(width, height int, seriesA, seriesB []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
	Pie(width, height int, slices []svg.Slice, opts svg.PieOpts) (template.HTML, error)
}

// SVGCharts renders charts with the svg package.
type SVGCharts struct{}

func (SVGCharts) Area(width, height int, series []svg.Series, labels []string, opts svg.AreaOpts) (template.HTML, error) {
	return svg.Area(width, height, series, labels, opts)
}

func (SVGCharts) Bars(width, height int, seriesA, seriesB []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.Bars(width, height, seriesA, seriesB, labels, opts)
}

func (SVGCharts) Pie(width, height int, slices []svg.Slice, opts svg.PieOpts) (template.HTML, error) {
	return svg.Pie(width, height, slices, opts)
}

// Input is everything a render depends on.
type Input struct {
	Authenticated bool
	Page          Page
	Dataset       Dataset
	LastSync      time.Time
}

// NavItem is one entry of the sidebar navigation.
type NavItem struct {
	Page   Page
	Label  string
	Href   string
	Active bool
}

// SummaryTile is a headline figure with its literal trend annotation.
type SummaryTile struct {
	Label string
	Value string
	Delta string
	Up    bool
}

// OverviewView is the content of the overview page.
type OverviewView struct {
	Tiles      []SummaryTile
	ChartTitle string
	Chart      template.HTML
}

// ProductLine is a formatted ProductRow.
type ProductLine struct {
	Name          string
	Orders        int
	Effectiveness string
	Revenue       string
}

// ProductsView is the content of the product performance page.
type ProductsView struct {
	Rows     []ProductLine
	Advisory string
}

// MarketingView is the content of the marketing page.
type MarketingView struct {
	Channels   []ChannelBudgetShare
	ShareTotal int
	PieTitle   string
	Pie        template.HTML
	BarTitle   string
	Bar        template.HTML
}

// LogisticsLine is one day of the dispatch table.
type LogisticsLine struct {
	Date    string
	Orders  int
	Revenue string
}

// LogisticsView is the content of the logistics page.
type LogisticsView struct {
	Banner   string
	Lead     string
	Rows     []LogisticsLine
	LastSync string
}

// Screen is the result of a render: which template to execute and its data.
// Exactly one of the view pointers is set on a dashboard screen.
type Screen struct {
	Template  string
	Title     string
	Heading   string
	Section   string
	Nav       []NavItem
	Overview  *OverviewView
	Products  *ProductsView
	Marketing *MarketingView
	Logistics *LogisticsView
}

// Render is a pure function of its input. An unauthenticated input always
// yields the login screen and exposes no dashboard data.
func Render(in Input, charts ChartRenderer) (Screen, error) {
	if !in.Authenticated {
		return Screen{Template: LoginTemplate, Title: "TrackingGT - Acesso"}, nil
	}
	if charts == nil {
		return Screen{}, fmt.Errorf("dashboard: chart renderer missing")
	}
	page := ParsePage(string(in.Page))
	screen := Screen{
		Template: DashboardTemplate,
		Title:    "TrackingGT - " + page.Heading(),
		Heading:  page.Heading(),
		Section:  string(page),
		Nav:      navigation(page),
	}

	var err error
	switch page {
	case PageProducts:
		screen.Products = productsView(in.Dataset)
	case PageMarketing:
		screen.Marketing, err = marketingView(in.Dataset, charts)
	case PageLogistics:
		screen.Logistics = logisticsView(in.Dataset, in.LastSync)
	default:
		screen.Overview, err = overviewView(in.Dataset, charts)
	}
	if err != nil {
		return Screen{}, fmt.Errorf("dashboard: render %s: %w", page, err)
	}
	return screen, nil
}

func navigation(active Page) []NavItem {
	items := make([]NavItem, 0, len(Pages))
	for _, p := range Pages {
		items = append(items, NavItem{
			Page:   p,
			Label:  p.Label(),
			Href:   "/dashboard?view=" + string(p),
			Active: p == active,
		})
	}
	return items
}

func dayLabels(ds Dataset) []string {
	labels := make([]string, len(ds.Metrics))
	for i, row := range ds.Metrics {
		labels[i] = row.Date.Format(DayLabel)
	}
	return labels
}

func overviewView(ds Dataset, charts ChartRenderer) (*OverviewView, error) {
	totals := ds.Totals()
	vm := &OverviewView{
		Tiles: []SummaryTile{
			{Label: "Receita Total", Value: FormatBRL(totals.Revenue), Delta: DeltaRevenue},
			{Label: "Lucro Líquido", Value: FormatBRL(totals.Profit), Delta: DeltaProfit},
			{Label: "Gasto Ads", Value: FormatBRL(totals.AdSpend), Delta: DeltaAdSpend},
			{Label: "ROI Médio", Value: ROIFigure, Delta: DeltaROI},
		},
		ChartTitle: "Evolução Financeira (BRL)",
	}
	for i := range vm.Tiles {
		vm.Tiles[i].Up = strings.HasPrefix(vm.Tiles[i].Delta, "+")
	}

	revenue := make([]float64, len(ds.Metrics))
	profit := make([]float64, len(ds.Metrics))
	for i, row := range ds.Metrics {
		revenue[i] = row.Revenue.InexactFloat64()
		profit[i] = row.Profit.InexactFloat64()
	}
	chart, err := charts.Area(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
		{Name: "Receita_BRL", Values: revenue, Color: "#2563EB"},
		{Name: "Lucro_BRL", Values: profit, Color: "#10B981"},
	}, dayLabels(ds), svg.AreaOpts{
		Title:       vm.ChartTitle,
		Description: "Receita e lucro diários dos últimos 7 dias em reais",
		Stacked:     true,
	})
	if err != nil {
		return nil, err
	}
	vm.Chart = chart
	return vm, nil
}

func productsView(ds Dataset) *ProductsView {
	vm := &ProductsView{Advisory: ds.ProductAdvice}
	for _, p := range ds.Products {
		vm.Rows = append(vm.Rows, ProductLine{
			Name:          p.Name,
			Orders:        p.OrderCount,
			Effectiveness: p.EffectivenessPercent,
			Revenue:       FormatAmount(p.Revenue),
		})
	}
	return vm
}

func marketingView(ds Dataset, charts ChartRenderer) (*MarketingView, error) {
	vm := &MarketingView{
		Channels:   ds.Channels,
		ShareTotal: ds.ShareTotal(),
		PieTitle:   "Budget por Canal",
		BarTitle:   "Custo por Aquisição (CAC)",
	}
	slices := make([]svg.Slice, len(ds.Channels))
	for i, c := range ds.Channels {
		slices[i] = svg.Slice{Label: c.ChannelName, Value: float64(c.SharePercent), Color: c.Color}
	}
	pie, err := charts.Pie(320, 320, slices, svg.PieOpts{
		Title:       vm.PieTitle,
		Description: "Participação de cada canal no orçamento de anúncios",
	})
	if err != nil {
		return nil, err
	}
	vm.Pie = pie

	spend := make([]float64, len(ds.Metrics))
	for i, row := range ds.Metrics {
		spend[i] = row.AdSpend.InexactFloat64()
	}
	bar, err := charts.Bars(480, 320, spend, nil, dayLabels(ds), svg.BarOpts{
		Title:        vm.BarTitle,
		Description:  "Gasto diário com anúncios em reais",
		SeriesALabel: "Gasto_Ads_BRL",
	})
	if err != nil {
		return nil, err
	}
	vm.Bar = bar
	return vm, nil
}

func logisticsView(ds Dataset, lastSync time.Time) *LogisticsView {
	vm := &LogisticsView{
		Banner: ds.LogisticsTitle,
		Lead:   ds.LogisticsLead,
	}
	for _, row := range ds.Metrics {
		vm.Rows = append(vm.Rows, LogisticsLine{
			Date:    row.Date.Format(DayLabel),
			Orders:  row.OrderCount,
			Revenue: FormatAmount(row.Revenue),
		})
	}
	if !lastSync.IsZero() {
		vm.LastSync = lastSync.Format("02/01/2006 15:04:05")
	}
	return vm
}
