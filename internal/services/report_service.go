package services

import (
	"time"

	"gorm.io/gorm"

	"dreinfinity/internal/dre"
	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/logger"
	"dreinfinity/internal/models"
)

// reportService orchestrates income-statement reporting: it fetches the
// period's data, resolves the company's rate sheet and runs the calculation
// engine. All arithmetic lives in the dre package.
type reportService struct {
	db               *gorm.DB
	companyService   CompanyServicer
	taxConfigService TaxConfigServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, companyService CompanyServicer, taxConfigService TaxConfigServicer) ReportServicer {
	return &reportService{
		db:               db,
		companyService:   companyService,
		taxConfigService: taxConfigService,
	}
}

// GetStatement computes the income statement for one period, with horizontal
// analysis against an independent run over the previous period.
func (s *reportService) GetStatement(userID, companyID string, month, year int) (*dre.Statement, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	company, err := s.companyService.GetCompanyByID(userID, companyID)
	if err != nil {
		return nil, err
	}

	rates, err := s.resolveRates(userID, company)
	if err != nil {
		return nil, err
	}

	transactions, err := s.fetchPeriod(companyID, month, year)
	if err != nil {
		return nil, err
	}

	statement, err := dre.ComputeStatement(transactions, rates)
	if err != nil {
		return nil, err
	}

	if statement.Uncategorized > 0 {
		logger.Get().Warnw("uncategorized operational entries counted as gross revenue",
			"company_id", companyID,
			"month", month,
			"year", year,
			"amount", statement.Uncategorized,
		)
	}

	prevMonth, prevYear := dre.PreviousPeriod(month, year)
	prevTransactions, err := s.fetchPeriod(companyID, prevMonth, prevYear)
	if err != nil {
		return nil, err
	}
	previous, err := dre.ComputeStatement(prevTransactions, rates)
	if err != nil {
		return nil, err
	}
	statement.Horizontal = dre.Horizontal(statement, previous)

	return statement, nil
}

// GetHistoricalSeries computes one income statement per month over the last
// `months` months, in chronological order. Months without transactions are
// absent from the series.
func (s *reportService) GetHistoricalSeries(userID, companyID string, months int) ([]dre.PeriodResult, error) {
	if months <= 0 {
		months = 12
	}

	company, err := s.companyService.GetCompanyByID(userID, companyID)
	if err != nil {
		return nil, err
	}

	rates, err := s.resolveRates(userID, company)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("company_id = ? AND date >= ?", companyID, from).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDataFetch, err)
	}

	return dre.HistoricalSeries(transactions, rates)
}

// resolveRates builds the company's rate sheet: the tax configuration when
// one exists, the legacy flat-rate table when only a regime is declared,
// statutory defaults otherwise.
func (s *reportService) resolveRates(userID string, company *models.Company) (dre.Rates, error) {
	cfg, err := s.taxConfigService.GetTaxConfiguration(userID, company.ID)
	if err != nil {
		return dre.Rates{}, err
	}
	if cfg == nil && company.TaxRegime != nil {
		return dre.LegacyRegimeRates(*company.TaxRegime), nil
	}
	return dre.ResolveRates(cfg), nil
}

func (s *reportService) fetchPeriod(companyID string, month, year int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("company_id = ? AND month = ? AND year = ?", companyID, month, year).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDataFetch, err)
	}
	return transactions, nil
}
