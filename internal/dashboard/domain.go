package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsRow is one day of business activity, amounts in BRL.
type MetricsRow struct {
	Date       time.Time
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	AdSpend    decimal.Decimal
	OrderCount int
}

// ProductRow is a SKU performance snapshot.
type ProductRow struct {
	Name                 string
	OrderCount           int
	EffectivenessPercent string
	Revenue              decimal.Decimal
}

// ChannelBudgetShare is a marketing channel's share of spend.
type ChannelBudgetShare struct {
	ChannelName  string
	SharePercent int
	Color        string
}

// Dataset is everything the dashboard displays. It is built once and
// treated as read-only.
type Dataset struct {
	Day            time.Time
	Metrics        []MetricsRow
	Products       []ProductRow
	Channels       []ChannelBudgetShare
	ProductAdvice  string
	LogisticsTitle string
	LogisticsLead  string
}

// Totals sums the daily metrics.
type Totals struct {
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	AdSpend    decimal.Decimal
	OrderCount int
}

// Totals sums revenue, profit, ad spend and orders over all rows.
func (d Dataset) Totals() Totals {
	var t Totals
	for _, row := range d.Metrics {
		t.Revenue = t.Revenue.Add(row.Revenue)
		t.Profit = t.Profit.Add(row.Profit)
		t.AdSpend = t.AdSpend.Add(row.AdSpend)
		t.OrderCount += row.OrderCount
	}
	return t
}

// ShareTotal is the sum of all channel shares, 100 for a consistent dataset.
func (d Dataset) ShareTotal() int {
	total := 0
	for _, c := range d.Channels {
		total += c.SharePercent
	}
	return total
}
