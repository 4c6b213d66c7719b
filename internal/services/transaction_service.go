package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/logger"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	companyService CompanyServicer
	metricsService MetricsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, companyService CompanyServicer, metricsService MetricsServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		companyService: companyService,
		metricsService: metricsService,
	}
}

// CreateTransaction creates a new transaction for a company. Month and year
// are derived from the transaction date; the cached metrics snapshot for
// that period is invalidated.
func (s *transactionService) CreateTransaction(userID, companyID string, input TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(companyID, &input); err != nil {
		return nil, err
	}
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		CompanyID:       companyID,
		Description:     input.Description,
		Amount:          input.Amount,
		Date:            input.Date,
		Month:           int(input.Date.Month()),
		Year:            input.Date.Year(),
		CategoryID:      input.CategoryID,
		ClientID:        input.ClientID,
		Type:            input.Type,
		IsNewClient:     input.IsNewClient,
		IsMarketingCost: input.IsMarketingCost,
		IsSalesCost:     input.IsSalesCost,
		CreatedBy:       userID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidateMetrics(companyID, transaction.Month, transaction.Year)
	return transaction, nil
}

// GetCompanyTransactions retrieves a paginated, filtered list of a company's
// transactions with their category and client preloaded.
func (s *transactionService) GetCompanyTransactions(userID, companyID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("company_id = ?", companyID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Preload("Client").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Search != "" {
		q = q.Where("description LIKE ?", "%"+f.Search+"%")
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific company.
func (s *transactionService) GetTransactionByID(userID, companyID, transactionID string) (*models.Transaction, error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	var transaction models.Transaction
	if err := s.db.Preload("Category").Preload("Client").
		Where("id = ? AND company_id = ?", transactionID, companyID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces a transaction's fields. When the date moves the
// transaction to another period, both the old and new period snapshots are
// invalidated.
func (s *transactionService) UpdateTransaction(userID, companyID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(companyID, &input); err != nil {
		return nil, err
	}

	oldMonth, oldYear := transaction.Month, transaction.Year

	updates := map[string]interface{}{
		"description":       input.Description,
		"amount":            input.Amount,
		"date":              input.Date,
		"month":             int(input.Date.Month()),
		"year":              input.Date.Year(),
		"category_id":       input.CategoryID,
		"client_id":         input.ClientID,
		"type":              input.Type,
		"is_new_client":     input.IsNewClient,
		"is_marketing_cost": input.IsMarketingCost,
		"is_sales_cost":     input.IsSalesCost,
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidateMetrics(companyID, oldMonth, oldYear)
	if transaction.Month != oldMonth || transaction.Year != oldYear {
		s.invalidateMetrics(companyID, transaction.Month, transaction.Year)
	}

	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction and invalidates its period's
// metrics snapshot.
func (s *transactionService) DeleteTransaction(userID, companyID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, companyID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidateMetrics(companyID, transaction.Month, transaction.Year)
	return nil
}

// validateInput checks the amount and the company scope of the referenced
// category and client.
func (s *transactionService) validateInput(companyID string, input *TransactionInput) error {
	if input.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}
	if input.Type == "" {
		input.Type = models.TransactionTypeOperational
	}

	if input.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND company_id = ?", *input.CategoryID, companyID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrCategoryNotFound
		}
	}
	if input.ClientID != nil {
		var count int64
		if err := s.db.Model(&models.Client{}).
			Where("id = ? AND company_id = ?", *input.ClientID, companyID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrClientNotFound
		}
	}
	return nil
}

// invalidateMetrics drops the cached snapshot for a period. Failures are
// logged, not propagated: the cache refreshes read-through on next access.
func (s *transactionService) invalidateMetrics(companyID string, month, year int) {
	if s.metricsService == nil {
		return
	}
	if err := s.metricsService.Invalidate(companyID, month, year); err != nil {
		logger.Get().Warnw("failed to invalidate metrics snapshot",
			"company_id", companyID,
			"month", month,
			"year", year,
			"error", err,
		)
	}
}
