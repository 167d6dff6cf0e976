package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowDays is the length of the metrics window.
const WindowDays = 7

var (
	dailyRevenue = []int64{7500, 8200, 9100, 7800, 10200, 11500, 12800}
	dailyProfit  = []int64{1200, 1500, 1800, 1100, 2200, 2800, 3100}
	dailyAdSpend = []int64{2100, 2300, 2500, 2400, 2800, 3100, 3400}
	dailyOrders  = []int{32, 38, 41, 35, 48, 52, 58}
)

// LastSevenDays returns the calendar days of the window ending on today's
// date, oldest first, each at midnight in today's location.
func LastSevenDays(today time.Time) []time.Time {
	y, m, d := today.Date()
	days := make([]time.Time, WindowDays)
	for i := range days {
		days[i] = time.Date(y, m, d-(WindowDays-1-i), 0, 0, 0, 0, today.Location())
	}
	return days
}

// StaticDataset builds the simulated dataset for the window ending today.
func StaticDataset(today time.Time) Dataset {
	days := LastSevenDays(today)
	metrics := make([]MetricsRow, WindowDays)
	for i, day := range days {
		metrics[i] = MetricsRow{
			Date:       day,
			Revenue:    decimal.NewFromInt(dailyRevenue[i]),
			Profit:     decimal.NewFromInt(dailyProfit[i]),
			AdSpend:    decimal.NewFromInt(dailyAdSpend[i]),
			OrderCount: dailyOrders[i],
		}
	}
	return Dataset{
		Day:     days[WindowDays-1],
		Metrics: metrics,
		Products: []ProductRow{
			{Name: "BOLSO TRIBAL – NUEVA EDICION", OrderCount: 12, EffectivenessPercent: "25%", Revenue: decimal.RequireFromString("205.42")},
			{Name: "CONJUNTO ADIDAS REF: 2266", OrderCount: 0, EffectivenessPercent: "0%", Revenue: decimal.Zero},
			{Name: "CAMISETA COL + GORRA", OrderCount: 45, EffectivenessPercent: "68%", Revenue: decimal.RequireFromString("4250.00")},
		},
		Channels: []ChannelBudgetShare{
			{ChannelName: "Facebook Ads", SharePercent: 70, Color: "#1877F2"},
			{ChannelName: "Google Ads", SharePercent: 20, Color: "#EA4335"},
			{ChannelName: "TikTok Ads", SharePercent: 10, Color: "#000000"},
		},
		ProductAdvice:  "Dica: Produtos com efetividade abaixo de 30% na Guatemala precisam de revisão no criativo.",
		LogisticsTitle: "API Droplatam conectada com o centro de distribuição na Cidade da Guatemala.",
		LogisticsLead:  "Pedidos recentes prontos para despacho:",
	}
}

// ForDay returns d when it already ends on today's date, otherwise the
// dataset rebuilt so its window ends on today.
func (d Dataset) ForDay(today time.Time) Dataset {
	y, m, day := today.Date()
	dy, dm, dd := d.Day.Date()
	if y == dy && m == dm && day == dd && d.Day.Location().String() == today.Location().String() {
		return d
	}
	rebuilt := StaticDataset(today)
	rebuilt.Products = d.Products
	rebuilt.Channels = d.Channels
	rebuilt.ProductAdvice = d.ProductAdvice
	rebuilt.LogisticsTitle = d.LogisticsTitle
	rebuilt.LogisticsLead = d.LogisticsLead
	return rebuilt
}
