package dre

// HorizontalAnalysis holds the period-over-period percentage variation of
// each waterfall line. A line whose previous value was zero or negative
// reports a variation of 0; an empty prior period therefore yields an
// all-zero block.
type HorizontalAnalysis struct {
	GrossRevenue      float64 `json:"gross_revenue"`
	Deductions        float64 `json:"deductions"`
	NetRevenue        float64 `json:"net_revenue"`
	CostOfGoods       float64 `json:"cost_of_goods"`
	GrossProfit       float64 `json:"gross_profit"`
	OperatingExpenses float64 `json:"operating_expenses"`
	OperatingProfit   float64 `json:"operating_profit"`
	FinancialExpenses float64 `json:"financial_expenses"`
	FinancialRevenue  float64 `json:"financial_revenue"`
	PreTaxProfit      float64 `json:"pre_tax_profit"`
	IncomeTax         float64 `json:"income_tax"`
	NetProfit         float64 `json:"net_profit"`
}

// PreviousPeriod resolves the period immediately before (month, year),
// rolling January back to December of the prior year.
func PreviousPeriod(month, year int) (int, int) {
	if month <= 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// Horizontal diffs two statements line by line. The previous statement is
// computed by an independent aggregation run over the prior period, not an
// incremental diff, so it tolerates the prior period being empty.
func Horizontal(current, previous *Statement) *HorizontalAnalysis {
	return &HorizontalAnalysis{
		GrossRevenue:      variation(current.GrossRevenue, previous.GrossRevenue),
		Deductions:        variation(current.Deductions.Total, previous.Deductions.Total),
		NetRevenue:        variation(current.NetRevenue, previous.NetRevenue),
		CostOfGoods:       variation(current.CostOfGoods, previous.CostOfGoods),
		GrossProfit:       variation(current.GrossProfit, previous.GrossProfit),
		OperatingExpenses: variation(current.OperatingExpenses, previous.OperatingExpenses),
		OperatingProfit:   variation(current.OperatingProfit, previous.OperatingProfit),
		FinancialExpenses: variation(current.FinancialExpenses, previous.FinancialExpenses),
		FinancialRevenue:  variation(current.FinancialRevenue, previous.FinancialRevenue),
		PreTaxProfit:      variation(current.PreTaxProfit, previous.PreTaxProfit),
		IncomeTax:         variation(current.IncomeTax.Total, previous.IncomeTax.Total),
		NetProfit:         variation(current.NetProfit, previous.NetProfit),
	}
}

// variation is the percent change from previous to current, 0 when the
// previous value is not positive.
func variation(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
