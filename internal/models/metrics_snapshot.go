package models

import "time"

// MetricsSnapshot caches one period's computed unit-economics metrics.
// The calculator remains the source of truth: snapshots are refreshed
// read-through on access, invalidated when a transaction in the period
// changes, and warmed by the scheduler.
type MetricsSnapshot struct {
	Base
	CompanyID   string `gorm:"type:uuid;not null;uniqueIndex:idx_metrics_snapshots_period" json:"company_id"`
	PeriodMonth int    `gorm:"not null;uniqueIndex:idx_metrics_snapshots_period" json:"period_month"`
	PeriodYear  int    `gorm:"not null;uniqueIndex:idx_metrics_snapshots_period" json:"period_year"`

	GrossRevenue   float64 `json:"gross_revenue"`
	NetRevenue     float64 `json:"net_revenue"`
	SalesCount     int     `json:"total_sales_count"`
	NewClients     int     `json:"new_clients_count"`
	ActiveClients  int     `json:"total_active_clients"`
	RepeatClients  int     `json:"repeat_customers_count"`
	MarketingCosts float64 `json:"marketing_costs"`
	SalesCosts     float64 `json:"sales_costs"`
	OperatingCosts float64 `json:"operational_costs"`
	FixedCosts     float64 `json:"fixed_costs"`
	VariableCosts  float64 `json:"variable_costs"`

	CAC                     float64 `gorm:"column:cac" json:"cac"`
	LTV                     float64 `gorm:"column:ltv" json:"ltv"`
	LTVCACRatio             float64 `gorm:"column:ltv_cac_ratio" json:"ltv_cac_ratio"`
	ROI                     float64 `gorm:"column:roi" json:"roi"`
	AverageTicket           float64 `json:"average_ticket"`
	BreakEvenPoint          float64 `json:"break_even_point"`
	SafetyMargin            float64 `json:"safety_margin"`
	SafetyMarginPercent     float64 `json:"safety_margin_percent"`
	ContributionMargin      float64 `json:"contribution_margin"`
	ContributionMarginRatio float64 `json:"contribution_margin_percent"`

	LastCalculatedAt time.Time `json:"last_calculated_at"`
}
