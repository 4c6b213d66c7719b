package dre

import "dreinfinity/internal/models"

// Customer lifetime is modeled as a 12-month ceiling scaled by the retention
// rate, with a 0.5 multiplier floor so a period without repeat purchases
// still yields a usable LTV.
const (
	lifetimeCeilingMonths    = 12.0
	lifetimeRetentionFloor   = 0.5
	defaultPurchaseFrequency = 1.0
)

// UnitEconomics is the unit-economics snapshot for one period.
type UnitEconomics struct {
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	SalesCount   int     `json:"total_sales_count"`

	NewClients    int `json:"new_clients_count"`
	ActiveClients int `json:"total_active_clients"`
	RepeatClients int `json:"repeat_customers_count"`

	MarketingCosts float64 `json:"marketing_costs"`
	SalesCosts     float64 `json:"sales_costs"`
	OperatingCosts float64 `json:"operational_costs"`
	FixedCosts     float64 `json:"fixed_costs"`
	VariableCosts  float64 `json:"variable_costs"`

	CAC                     float64 `json:"cac"`
	LTV                     float64 `json:"ltv"`
	LTVCACRatio             float64 `json:"ltv_cac_ratio"`
	ROI                     float64 `json:"roi"`
	AverageTicket           float64 `json:"average_ticket"`
	BreakEvenPoint          float64 `json:"break_even_point"`
	SafetyMargin            float64 `json:"safety_margin"`
	SafetyMarginPercent     float64 `json:"safety_margin_percent"`
	ContributionMargin      float64 `json:"contribution_margin"`
	ContributionMarginRatio float64 `json:"contribution_margin_percent"`
}

// ComputeMetrics derives CAC, LTV, ROI, break-even and related metrics from
// a period's transactions. Net revenue comes from the same rate sheet as the
// income statement. Every ratio is guarded: a missing denominator yields 0,
// except purchase frequency which defaults to 1 so LTV does not collapse
// with a single active client.
func ComputeMetrics(transactions []models.Transaction, rates Rates) (*UnitEconomics, error) {
	m := &UnitEconomics{}
	clientPurchases := make(map[string]int)

	for i := range transactions {
		t := &transactions[i]
		amount, err := transactionAmount(t)
		if err != nil {
			return nil, err
		}
		if t.Category == nil {
			continue
		}

		switch t.Category.Type {
		case models.CategoryTypeRevenue:
			m.GrossRevenue += amount
			m.SalesCount++
			if t.ClientID != nil {
				clientPurchases[*t.ClientID]++
			}
			if t.IsNewClient {
				m.NewClients++
			}

		case models.CategoryTypeCost, models.CategoryTypeExpense:
			// A transaction may serve both marketing and sales.
			if t.IsMarketingCost {
				m.MarketingCosts += amount
			}
			if t.IsSalesCost {
				m.SalesCosts += amount
			}
			if t.Category.CostClassification != nil {
				switch *t.Category.CostClassification {
				case models.CostClassificationFixed:
					m.FixedCosts += amount
				case models.CostClassificationVariable:
					m.VariableCosts += amount
				}
			}
			if t.Category.Type == models.CategoryTypeExpense {
				m.OperatingCosts += amount
			}
		}
	}

	m.NetRevenue = rates.NetRevenue(m.GrossRevenue)

	m.ActiveClients = len(clientPurchases)
	for _, purchases := range clientPurchases {
		if purchases > 1 {
			m.RepeatClients++
		}
	}

	if m.NewClients > 0 {
		m.CAC = (m.MarketingCosts + m.SalesCosts) / float64(m.NewClients)
	}
	if m.SalesCount > 0 {
		m.AverageTicket = m.GrossRevenue / float64(m.SalesCount)
	}

	var retentionRate float64
	purchaseFrequency := defaultPurchaseFrequency
	if m.ActiveClients > 0 {
		retentionRate = float64(m.RepeatClients) / float64(m.ActiveClients)
		purchaseFrequency = float64(m.SalesCount) / float64(m.ActiveClients)
	}

	lifetimeMultiplier := lifetimeRetentionFloor
	if retentionRate > 0 {
		lifetimeMultiplier = retentionRate
	}
	lifetimeMonths := lifetimeCeilingMonths * lifetimeMultiplier

	m.LTV = m.AverageTicket * purchaseFrequency * lifetimeMonths
	if m.CAC > 0 {
		m.LTVCACRatio = m.LTV / m.CAC
	}

	m.ContributionMargin = m.NetRevenue - m.VariableCosts
	var contributionRate float64
	if m.NetRevenue > 0 {
		contributionRate = m.ContributionMargin / m.NetRevenue
	}
	m.ContributionMarginRatio = contributionRate * 100

	if contributionRate > 0 {
		m.BreakEvenPoint = m.FixedCosts / contributionRate
	}
	m.SafetyMargin = m.NetRevenue - m.BreakEvenPoint
	if m.NetRevenue > 0 {
		m.SafetyMarginPercent = m.SafetyMargin / m.NetRevenue * 100
	}

	totalCosts := m.FixedCosts + m.VariableCosts + m.MarketingCosts + m.SalesCosts
	if totalCosts > 0 {
		m.ROI = (m.NetRevenue - totalCosts) / totalCosts * 100
	}

	return m, nil
}
