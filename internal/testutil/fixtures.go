package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dreinfinity/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCompany creates a company owned by the given user.
func CreateTestCompany(t *testing.T, db *gorm.DB, userID string) *models.Company {
	t.Helper()

	company := &models.Company{
		UserID: userID,
		Name:   fmt.Sprintf("Test Company %d", nextID()),
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, companyID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		CompanyID: companyID,
		Name:      fmt.Sprintf("Test Category %d", nextID()),
		Type:      categoryType,
		IsActive:  true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestClient creates a client for the given company.
func CreateTestClient(t *testing.T, db *gorm.DB, companyID string) *models.Client {
	t.Helper()

	client := &models.Client{
		CompanyID: companyID,
		Name:      fmt.Sprintf("Test Client %d", nextID()),
		IsActive:  true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestTransaction creates a transaction in the given category for the
// given period.
func CreateTestTransaction(t *testing.T, db *gorm.DB, companyID string, categoryID *string, amount float64, month, year int) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		CompanyID:   companyID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      decimal.NewFromFloat(amount),
		Date:        time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
		Month:       month,
		Year:        year,
		CategoryID:  categoryID,
		Type:        models.TransactionTypeOperational,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTaxConfiguration creates a DAS-mode tax configuration with the
// given rate.
func CreateTestTaxConfiguration(t *testing.T, db *gorm.DB, companyID string, dasRate float64) *models.TaxConfiguration {
	t.Helper()

	cfg := &models.TaxConfiguration{
		CompanyID: companyID,
		UseDAS:    true,
		DASRate:   &dasRate,
	}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("failed to create test tax configuration: %v", err)
	}
	return cfg
}

// CreateTestGoal creates a goal for the given period and metric.
func CreateTestGoal(t *testing.T, db *gorm.DB, companyID string, month, year int, metricName string, target float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		CompanyID:   companyID,
		PeriodMonth: month,
		PeriodYear:  year,
		MetricName:  metricName,
		TargetValue: decimal.NewFromFloat(target),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
