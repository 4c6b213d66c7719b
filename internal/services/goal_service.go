package services

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
)

// goalService handles goal-related business logic. Goals never feed back
// into the calculation engine; they only compare targets against computed
// metrics.
type goalService struct {
	db             *gorm.DB
	companyService CompanyServicer
	metricsService MetricsServicer
	reportService  ReportServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, companyService CompanyServicer, metricsService MetricsServicer, reportService ReportServicer) GoalServicer {
	return &goalService{
		db:             db,
		companyService: companyService,
		metricsService: metricsService,
		reportService:  reportService,
	}
}

// UpsertGoal creates or updates the target for one metric in one period.
// A company has at most one goal per (period, metric).
func (s *goalService) UpsertGoal(userID, companyID string, month, year int, metricName string, target decimal.Decimal) (*models.Goal, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if !slices.Contains(models.KnownMetrics, metricName) {
		return nil, apperrors.ErrUnknownMetric
	}
	if target.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target value must not be negative")
	}

	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	var goal models.Goal
	err := s.db.Where("company_id = ? AND period_month = ? AND period_year = ? AND metric_name = ?",
		companyID, month, year, metricName).First(&goal).Error
	if err == nil {
		if err := s.db.Model(&goal).Update("target_value", target).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		goal.TargetValue = target
		return &goal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal = models.Goal{
		CompanyID:   companyID,
		PeriodMonth: month,
		PeriodYear:  year,
		MetricName:  metricName,
		TargetValue: target,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// GetCompanyGoals lists a company's goals for one period.
func (s *goalService) GetCompanyGoals(userID, companyID string, month, year int) ([]models.Goal, error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	var goals []models.Goal
	if err := s.db.Where("company_id = ? AND period_month = ? AND period_year = ?", companyID, month, year).
		Order("metric_name ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(userID, companyID, goalID string) error {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return err
	}

	var goal models.Goal
	if err := s.db.Where("id = ? AND company_id = ?", goalID, companyID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGoalNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalProgress compares each of the period's goals against the computed
// metric values. net_profit comes from the income statement; every other
// metric from the unit-economics snapshot.
func (s *goalService) GetGoalProgress(userID, companyID string, month, year int) ([]GoalProgress, error) {
	goals, err := s.GetCompanyGoals(userID, companyID, month, year)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []GoalProgress{}, nil
	}

	snapshot, err := s.metricsService.GetMetrics(userID, companyID, month, year)
	if err != nil {
		return nil, err
	}

	var netProfit float64
	if hasMetric(goals, models.MetricNetProfit) {
		statement, err := s.reportService.GetStatement(userID, companyID, month, year)
		if err != nil {
			return nil, err
		}
		netProfit = statement.NetProfit
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		actual := metricValue(snapshot, goal.MetricName, netProfit)
		target := goal.TargetValue.InexactFloat64()

		var percentage float64
		if target > 0 {
			percentage = actual / target * 100
		}

		progress = append(progress, GoalProgress{
			GoalID:      goal.ID,
			MetricName:  goal.MetricName,
			TargetValue: target,
			ActualValue: actual,
			Percentage:  percentage,
			Achieved:    target > 0 && actual >= target,
		})
	}
	return progress, nil
}

func hasMetric(goals []models.Goal, name string) bool {
	for _, g := range goals {
		if g.MetricName == name {
			return true
		}
	}
	return false
}

func metricValue(snapshot *models.MetricsSnapshot, name string, netProfit float64) float64 {
	switch name {
	case models.MetricNetRevenue:
		return snapshot.NetRevenue
	case models.MetricNetProfit:
		return netProfit
	case models.MetricCAC:
		return snapshot.CAC
	case models.MetricLTV:
		return snapshot.LTV
	case models.MetricROI:
		return snapshot.ROI
	case models.MetricAverageTicket:
		return snapshot.AverageTicket
	case models.MetricNewClients:
		return float64(snapshot.NewClients)
	case models.MetricContributionMargin:
		return snapshot.ContributionMargin
	}
	return 0
}
