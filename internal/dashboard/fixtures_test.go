package dashboard_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestLastSevenDaysEndsToday(t *testing.T) {
	loc := mustLocation(t, "America/Guatemala")
	today := time.Date(2024, time.March, 1, 23, 59, 0, 0, loc)

	days := dashboard.LastSevenDays(today)
	require.Len(t, days, dashboard.WindowDays)
	assert.Equal(t, time.Date(2024, time.February, 24, 0, 0, 0, 0, loc), days[0])
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), days[6])
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i].After(days[i-1]), "day %d must follow day %d", i, i-1)
		assert.Equal(t, 0, days[i].Hour())
	}
}

func TestStaticDatasetTotals(t *testing.T) {
	ds := dashboard.StaticDataset(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	totals := ds.Totals()

	assert.Equal(t, "67100", totals.Revenue.String())
	assert.Equal(t, "13700", totals.Profit.String())
	assert.Equal(t, "18600", totals.AdSpend.String())
	assert.Equal(t, 304, totals.OrderCount)
	assert.Equal(t, 100, ds.ShareTotal())
	assert.Len(t, ds.Products, 3)
}

func TestStaticDatasetProducts(t *testing.T) {
	ds := dashboard.StaticDataset(time.Now())

	var found bool
	for _, p := range ds.Products {
		if p.Name == "CONJUNTO ADIDAS REF: 2266" {
			found = true
			assert.Equal(t, 0, p.OrderCount)
			assert.True(t, p.Revenue.IsZero())
			assert.Equal(t, "0%", p.EffectivenessPercent)
		}
	}
	assert.True(t, found)
}

func TestForDayRebuildsOnlyWhenDayChanges(t *testing.T) {
	first := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	ds := dashboard.StaticDataset(first)

	same := ds.ForDay(first.Add(10 * time.Hour))
	assert.Equal(t, ds.Day, same.Day)

	next := ds.ForDay(first.Add(24 * time.Hour))
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), next.Day)
	assert.Equal(t, next.Day, next.Metrics[dashboard.WindowDays-1].Date)
	assert.Equal(t, ds.Products, next.Products)
	assert.True(t, ds.Totals().Revenue.Equal(next.Totals().Revenue))
}
