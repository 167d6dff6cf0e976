package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
)

// LogisticsHeader is the first record of the logistics export.
var LogisticsHeader = []string{"Data", "Pedidos", "Receita_BRL"}

// WriteLogisticsCSV writes one record per day with the date as yyyy-mm-dd
// and the revenue with two decimals and no grouping.
func WriteLogisticsCSV(w io.Writer, rows []dashboard.MetricsRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(LogisticsHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Date.Format("2006-01-02"),
			strconv.Itoa(row.OrderCount),
			row.Revenue.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
