package services

import (
	"time"

	"github.com/shopspring/decimal"

	"dreinfinity/internal/dre"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CompanyServicer defines the contract for company-related business logic.
// Companies are the tenant boundary: every other servicer resolves the
// company through here to enforce ownership.
type CompanyServicer interface {
	CreateCompany(userID, name, cnpj string, taxRegime *models.TaxRegime) (*models.Company, error)
	GetUserCompanies(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
	GetCompanyByID(userID, companyID string) (*models.Company, error)
	UpdateCompany(userID, companyID, name, cnpj string, taxRegime *models.TaxRegime) (*models.Company, error)
	DeleteCompany(userID, companyID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, companyID, name string, categoryType models.CategoryType, costClassification *models.CostClassification, expenseSubtype models.ExpenseSubtype, parentID *string, displayOrder int, color string) (*models.Category, error)
	GetCompanyCategories(userID, companyID string, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, companyID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, companyID, categoryID, name string, costClassification *models.CostClassification, expenseSubtype models.ExpenseSubtype, parentID *string, displayOrder *int, isActive *bool, color string) (*models.Category, error)
	DeleteCategory(userID, companyID, categoryID string) error
}

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	CreateClient(userID, companyID, name, email, phone string) (*models.Client, error)
	GetCompanyClients(userID, companyID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Client], error)
	GetClientByID(userID, companyID, clientID string) (*models.Client, error)
	UpdateClient(userID, companyID, clientID, name, email, phone string, isActive *bool) (*models.Client, error)
	DeleteClient(userID, companyID, clientID string) error
}

// TransactionInput carries the fields for creating or updating a
// transaction. Month and year are always derived from Date by the service.
type TransactionInput struct {
	Description     string
	Amount          decimal.Decimal
	Date            time.Time
	Type            models.TransactionType
	CategoryID      *string
	ClientID        *string
	IsNewClient     bool
	IsMarketingCost bool
	IsSalesCost     bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Month      *int
	Year       *int
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	ClientID   *string
	Search     string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, companyID string, input TransactionInput) (*models.Transaction, error)
	GetCompanyTransactions(userID, companyID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, companyID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, companyID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, companyID, transactionID string) error
}

// TaxConfigInput carries the nullable rate overrides for a company's tax
// configuration. Nil fields keep the statutory default.
type TaxConfigInput struct {
	UseDAS     bool
	DASRate    *float64
	ICMSRate   *float64
	IPIRate    *float64
	PISRate    *float64
	COFINSRate *float64
	ISSRate    *float64

	IRPJRate                *float64
	IRPJAdditionalRate      *float64
	IRPJAdditionalThreshold *float64
	CSLLRate                *float64
}

// TaxConfigServicer defines the contract for tax configuration logic.
// GetTaxConfiguration returns (nil, nil) when no row exists: absence is a
// valid state that resolves to statutory defaults downstream.
type TaxConfigServicer interface {
	GetTaxConfiguration(userID, companyID string) (*models.TaxConfiguration, error)
	UpsertTaxConfiguration(userID, companyID string, input TaxConfigInput) (*models.TaxConfiguration, error)
	DeleteTaxConfiguration(userID, companyID string) error
}

// GoalProgress compares one goal's target against the metric's computed
// value for the goal's period.
type GoalProgress struct {
	GoalID      string  `json:"goal_id"`
	MetricName  string  `json:"metric_name"`
	TargetValue float64 `json:"target_value"`
	ActualValue float64 `json:"actual_value"`
	Percentage  float64 `json:"percentage"`
	Achieved    bool    `json:"achieved"`
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	UpsertGoal(userID, companyID string, month, year int, metricName string, target decimal.Decimal) (*models.Goal, error)
	GetCompanyGoals(userID, companyID string, month, year int) ([]models.Goal, error)
	DeleteGoal(userID, companyID, goalID string) error
	GetGoalProgress(userID, companyID string, month, year int) ([]GoalProgress, error)
}

// ReportServicer defines the contract for income-statement reporting.
type ReportServicer interface {
	GetStatement(userID, companyID string, month, year int) (*dre.Statement, error)
	GetHistoricalSeries(userID, companyID string, months int) ([]dre.PeriodResult, error)
}

// MetricsServicer defines the contract for unit-economics metrics with a
// read-through snapshot cache.
type MetricsServicer interface {
	GetMetrics(userID, companyID string, month, year int) (*models.MetricsSnapshot, error)
	Invalidate(companyID string, month, year int) error
	RefreshAll() error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
