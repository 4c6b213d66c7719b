package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"dreinfinity/internal/dre"
	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/logger"
	"dreinfinity/internal/models"
)

// metricsService computes unit-economics metrics with a read-through
// snapshot cache: a cached period is served as-is, a miss triggers a full
// recomputation that is persisted before returning.
type metricsService struct {
	db             *gorm.DB
	companyService CompanyServicer
}

// NewMetricsService creates a new MetricsServicer.
func NewMetricsService(db *gorm.DB, companyService CompanyServicer) MetricsServicer {
	return &metricsService{db: db, companyService: companyService}
}

// GetMetrics returns the period's metrics snapshot, computing and caching it
// when absent.
func (s *metricsService) GetMetrics(userID, companyID string, month, year int) (*models.MetricsSnapshot, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	company, err := s.companyService.GetCompanyByID(userID, companyID)
	if err != nil {
		return nil, err
	}

	var snapshot models.MetricsSnapshot
	err = s.db.Where("company_id = ? AND period_month = ? AND period_year = ?", companyID, month, year).
		First(&snapshot).Error
	if err == nil {
		return &snapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.refresh(company, month, year)
}

// Invalidate drops the cached snapshot for a period. The next read
// recomputes it. The delete is unscoped so a later refresh can reuse the
// period's unique index slot.
func (s *metricsService) Invalidate(companyID string, month, year int) error {
	if err := s.db.Unscoped().
		Where("company_id = ? AND period_month = ? AND period_year = ?", companyID, month, year).
		Delete(&models.MetricsSnapshot{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RefreshAll recomputes the current period's snapshot for every company.
// Called by the scheduler; per-company failures are logged and skipped so
// one broken company does not starve the rest.
func (s *metricsService) RefreshAll() error {
	var companies []models.Company
	if err := s.db.Find(&companies).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	for i := range companies {
		if _, err := s.refresh(&companies[i], month, year); err != nil {
			logger.Get().Errorw("metrics refresh failed",
				"company_id", companies[i].ID,
				"month", month,
				"year", year,
				"error", err,
			)
		}
	}
	return nil
}

// refresh recomputes a period's metrics and replaces the cached snapshot.
func (s *metricsService) refresh(company *models.Company, month, year int) (*models.MetricsSnapshot, error) {
	rates, err := s.resolveRates(company)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("company_id = ? AND month = ? AND year = ?", company.ID, month, year).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDataFetch, err)
	}

	metrics, err := dre.ComputeMetrics(transactions, rates)
	if err != nil {
		return nil, err
	}

	snapshot := &models.MetricsSnapshot{
		CompanyID:   company.ID,
		PeriodMonth: month,
		PeriodYear:  year,

		GrossRevenue:   metrics.GrossRevenue,
		NetRevenue:     metrics.NetRevenue,
		SalesCount:     metrics.SalesCount,
		NewClients:     metrics.NewClients,
		ActiveClients:  metrics.ActiveClients,
		RepeatClients:  metrics.RepeatClients,
		MarketingCosts: metrics.MarketingCosts,
		SalesCosts:     metrics.SalesCosts,
		OperatingCosts: metrics.OperatingCosts,
		FixedCosts:     metrics.FixedCosts,
		VariableCosts:  metrics.VariableCosts,

		CAC:                     metrics.CAC,
		LTV:                     metrics.LTV,
		LTVCACRatio:             metrics.LTVCACRatio,
		ROI:                     metrics.ROI,
		AverageTicket:           metrics.AverageTicket,
		BreakEvenPoint:          metrics.BreakEvenPoint,
		SafetyMargin:            metrics.SafetyMargin,
		SafetyMarginPercent:     metrics.SafetyMarginPercent,
		ContributionMargin:      metrics.ContributionMargin,
		ContributionMarginRatio: metrics.ContributionMarginRatio,

		LastCalculatedAt: time.Now(),
	}

	if err := s.Invalidate(company.ID, month, year); err != nil {
		return nil, err
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snapshot, nil
}

// resolveRates mirrors the report service's rate resolution without an
// ownership check, since refresh runs both for API reads (already checked)
// and for the scheduler.
func (s *metricsService) resolveRates(company *models.Company) (dre.Rates, error) {
	var cfg models.TaxConfiguration
	err := s.db.Where("company_id = ?", company.ID).First(&cfg).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dre.Rates{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if company.TaxRegime != nil {
			return dre.LegacyRegimeRates(*company.TaxRegime), nil
		}
		return dre.ResolveRates(nil), nil
	}
	return dre.ResolveRates(&cfg), nil
}
