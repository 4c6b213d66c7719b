package models

import "github.com/shopspring/decimal"

// Metric names accepted for goals. Each maps to a field of the computed
// metrics snapshot for progress comparison.
const (
	MetricNetRevenue         = "net_revenue"
	MetricNetProfit          = "net_profit"
	MetricCAC                = "cac"
	MetricLTV                = "ltv"
	MetricROI                = "roi"
	MetricAverageTicket      = "average_ticket"
	MetricNewClients         = "new_clients"
	MetricContributionMargin = "contribution_margin"
)

// KnownMetrics lists the goal metric names the API accepts.
var KnownMetrics = []string{
	MetricNetRevenue,
	MetricNetProfit,
	MetricCAC,
	MetricLTV,
	MetricROI,
	MetricAverageTicket,
	MetricNewClients,
	MetricContributionMargin,
}

// Goal is a per-company, per-period target for one metric. Goals feed
// progress indicators only; they never participate in the calculation
// itself.
type Goal struct {
	Base
	CompanyID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_goals_period_metric" json:"company_id"`
	PeriodMonth int             `gorm:"not null;uniqueIndex:idx_goals_period_metric" json:"period_month"`
	PeriodYear  int             `gorm:"not null;uniqueIndex:idx_goals_period_metric" json:"period_year"`
	MetricName  string          `gorm:"not null;uniqueIndex:idx_goals_period_metric" json:"metric_name"`
	TargetValue decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_value"`
}
