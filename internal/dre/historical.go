package dre

import (
	"sort"

	"dreinfinity/internal/models"
)

// monthLabels are the chart labels for each month, January first.
var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// PeriodResult is one point of the historical series: the trend-chart
// projection of a period's income statement.
type PeriodResult struct {
	Label      string  `json:"month"`
	Month      int     `json:"month_num"`
	Year       int     `json:"year"`
	NetRevenue float64 `json:"net_revenue"`
	NetProfit  float64 `json:"net_profit"`
	NetMargin  float64 `json:"net_margin"`
}

type periodKey struct {
	year  int
	month int
}

// HistoricalSeries groups transactions by (year, month) and computes an
// independent income statement per period, returning the series in
// chronological order. Horizontal analysis is not attached; each point
// stands alone.
func HistoricalSeries(transactions []models.Transaction, rates Rates) ([]PeriodResult, error) {
	groups := make(map[periodKey][]models.Transaction)
	for _, t := range transactions {
		key := periodKey{year: t.Year, month: t.Month}
		groups[key] = append(groups[key], t)
	}

	series := make([]PeriodResult, 0, len(groups))
	for key, group := range groups {
		statement, err := ComputeStatement(group, rates)
		if err != nil {
			return nil, err
		}

		label := ""
		if key.month >= 1 && key.month <= 12 {
			label = monthLabels[key.month-1]
		}

		series = append(series, PeriodResult{
			Label:      label,
			Month:      key.month,
			Year:       key.year,
			NetRevenue: statement.NetRevenue,
			NetProfit:  statement.NetProfit,
			NetMargin:  statement.Margins.Net,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})

	return series, nil
}
