package dre

import "dreinfinity/internal/models"

// Deductions itemizes the sales-tax deduction from gross revenue. The
// inactive path's components are zero.
type Deductions struct {
	ICMS   float64 `json:"icms"`
	IPI    float64 `json:"ipi"`
	PIS    float64 `json:"pis"`
	COFINS float64 `json:"cofins"`
	ISS    float64 `json:"iss"`
	DAS    float64 `json:"das"`
	Total  float64 `json:"total"`
}

// IncomeTax itemizes the taxes on pre-tax profit. All lines are zero when
// pre-tax profit is zero or negative.
type IncomeTax struct {
	IRPJ       float64 `json:"irpj"`
	IRPJSurtax float64 `json:"irpj_surtax"`
	CSLL       float64 `json:"csll"`
	Total      float64 `json:"total"`
}

// Margins are the three profitability percentages against net revenue.
type Margins struct {
	Gross     float64 `json:"gross"`
	Operating float64 `json:"operating"`
	Net       float64 `json:"net"`
}

// VerticalAnalysis expresses each statement line as a percentage of net
// revenue.
type VerticalAnalysis struct {
	Deductions        float64 `json:"deductions"`
	CostOfGoods       float64 `json:"cost_of_goods"`
	OperatingExpenses float64 `json:"operating_expenses"`
	FinancialExpenses float64 `json:"financial_expenses"`
	FinancialRevenue  float64 `json:"financial_revenue"`
	IncomeTax         float64 `json:"income_tax"`
}

// Statement is the full income-statement waterfall for one period.
type Statement struct {
	GrossRevenue      float64          `json:"gross_revenue"`
	Deductions        Deductions       `json:"deductions"`
	NetRevenue        float64          `json:"net_revenue"`
	CostOfGoods       float64          `json:"cost_of_goods"`
	GrossProfit       float64          `json:"gross_profit"`
	OperatingExpenses float64          `json:"operating_expenses"`
	OperatingProfit   float64          `json:"operating_profit"`
	FinancialExpenses float64          `json:"financial_expenses"`
	FinancialRevenue  float64          `json:"financial_revenue"`
	PreTaxProfit      float64          `json:"pre_tax_profit"`
	IncomeTax         IncomeTax        `json:"income_tax"`
	NetProfit         float64          `json:"net_profit"`
	Margins           Margins          `json:"margins"`
	Vertical          VerticalAnalysis `json:"vertical_analysis"`

	// Uncategorized is carried through from aggregation for visibility.
	Uncategorized float64 `json:"uncategorized,omitempty"`

	// Horizontal is attached when a previous-period statement was compared.
	Horizontal *HorizontalAnalysis `json:"horizontal_analysis,omitempty"`
}

// Compute derives the full income statement from aggregated buckets and a
// resolved rate sheet. Each step feeds the next; every percentage is guarded
// to zero when its denominator is not positive, so outputs are always finite.
func Compute(totals Totals, rates Rates) *Statement {
	s := &Statement{
		GrossRevenue:      totals.GrossRevenue,
		CostOfGoods:       totals.CostOfGoods,
		OperatingExpenses: totals.OperatingExpenses,
		FinancialExpenses: totals.FinancialExpenses,
		FinancialRevenue:  totals.FinancialRevenue,
		Uncategorized:     totals.Uncategorized,
	}

	s.Deductions = rates.SalesDeductions(s.GrossRevenue)
	s.NetRevenue = s.GrossRevenue - s.Deductions.Total
	s.GrossProfit = s.NetRevenue - s.CostOfGoods
	s.OperatingProfit = s.GrossProfit - s.OperatingExpenses
	s.PreTaxProfit = s.OperatingProfit + s.FinancialRevenue - s.FinancialExpenses

	if s.PreTaxProfit > 0 {
		s.IncomeTax.IRPJ = s.PreTaxProfit * rates.IRPJ
		if surplus := s.PreTaxProfit - rates.IRPJAdditionalThreshold; surplus > 0 {
			s.IncomeTax.IRPJSurtax = surplus * rates.IRPJAdditional
		}
		s.IncomeTax.CSLL = s.PreTaxProfit * rates.CSLL
		s.IncomeTax.Total = s.IncomeTax.IRPJ + s.IncomeTax.IRPJSurtax + s.IncomeTax.CSLL
	}

	s.NetProfit = s.PreTaxProfit - s.IncomeTax.Total

	s.Margins = Margins{
		Gross:     percentOf(s.GrossProfit, s.NetRevenue),
		Operating: percentOf(s.OperatingProfit, s.NetRevenue),
		Net:       percentOf(s.NetProfit, s.NetRevenue),
	}
	s.Vertical = VerticalAnalysis{
		Deductions:        percentOf(s.Deductions.Total, s.NetRevenue),
		CostOfGoods:       percentOf(s.CostOfGoods, s.NetRevenue),
		OperatingExpenses: percentOf(s.OperatingExpenses, s.NetRevenue),
		FinancialExpenses: percentOf(s.FinancialExpenses, s.NetRevenue),
		FinancialRevenue:  percentOf(s.FinancialRevenue, s.NetRevenue),
		IncomeTax:         percentOf(s.IncomeTax.Total, s.NetRevenue),
	}

	return s
}

// ComputeStatement aggregates a period's transactions and computes the
// income statement in one step.
func ComputeStatement(transactions []models.Transaction, rates Rates) (*Statement, error) {
	totals, err := Aggregate(transactions)
	if err != nil {
		return nil, err
	}
	return Compute(totals, rates), nil
}

// percentOf returns part as a percentage of base, or 0 when base is not
// positive. A negative net revenue would make the percentage meaningless.
func percentOf(part, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return part / base * 100
}
