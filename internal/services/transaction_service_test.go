package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
	"dreinfinity/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("derives_period_from_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		companySvc := NewCompanyService(db)
		svc := NewTransactionService(db, companySvc, NewMetricsService(db, companySvc))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)

		tx, err := svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Venda de produto",
			Amount:      decimal.NewFromFloat(250.50),
			Date:        time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		if tx.Month != 3 || tx.Year != 2025 {
			t.Errorf("expected period 3/2025, got %d/%d", tx.Month, tx.Year)
		}
		if tx.Type != models.TransactionTypeOperational {
			t.Errorf("expected default operational type, got %s", tx.Type)
		}
		if tx.CreatedBy != user.ID {
			t.Errorf("expected created_by %s, got %s", user.ID, tx.CreatedBy)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		_, err := svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Inválida",
			Amount:      decimal.NewFromFloat(-10),
			Date:        time.Now(),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		_, err := svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Sem data",
			Amount:      decimal.NewFromFloat(10),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("category_from_another_company", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		otherCompany := testutil.CreateTestCompany(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, otherCompany.ID, models.CategoryTypeRevenue)

		_, err := svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Categoria alheia",
			Amount:      decimal.NewFromFloat(10),
			Date:        time.Now(),
			CategoryID:  &foreign.ID,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalidates_period_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		companySvc := NewCompanyService(db)
		metricsSvc := NewMetricsService(db, companySvc)
		svc := NewTransactionService(db, companySvc, metricsSvc)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)

		// Warm the cache for 3/2025
		_, err := metricsSvc.GetMetrics(user.ID, company.ID, 3, 2025)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Venda",
			Amount:      decimal.NewFromFloat(100),
			Date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.MetricsSnapshot{}).
			Where("company_id = ? AND period_month = ? AND period_year = ?", company.ID, 3, 2025).
			Count(&count)
		if count != 0 {
			t.Errorf("expected period snapshot to be invalidated, found %d", count)
		}
	})
}

func TestGetCompanyTransactions(t *testing.T) {
	t.Run("filter_by_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)

		testutil.CreateTestTransaction(t, db, company.ID, &category.ID, 100, 3, 2025)
		testutil.CreateTestTransaction(t, db, company.ID, &category.ID, 200, 3, 2025)
		testutil.CreateTestTransaction(t, db, company.ID, &category.ID, 300, 4, 2025)

		month, year := 3, 2025
		result, err := svc.GetCompanyTransactions(user.ID, company.ID, pagination.PageRequest{}, TransactionFilter{Month: &month, Year: &year})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Errorf("expected 2 transactions in 3/2025, got %d", len(result.Data))
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		revenue := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)
		cost := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeCost)

		testutil.CreateTestTransaction(t, db, company.ID, &revenue.ID, 100, 3, 2025)
		testutil.CreateTestTransaction(t, db, company.ID, &cost.ID, 50, 3, 2025)

		result, err := svc.GetCompanyTransactions(user.ID, company.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &cost.ID})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 {
			t.Errorf("expected 1 cost transaction, got %d", len(result.Data))
		}
	})

	t.Run("search_by_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		companySvc := NewCompanyService(db)
		svc := NewTransactionService(db, companySvc, nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)

		_, err := svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Aluguel do galpão",
			Amount:      decimal.NewFromFloat(1500),
			Date:        time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction(user.ID, company.ID, TransactionInput{
			Description: "Venda balcão",
			Amount:      decimal.NewFromFloat(80),
			Date:        time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		result, err := svc.GetCompanyTransactions(user.ID, company.ID, pagination.PageRequest{}, TransactionFilter{Search: "Aluguel"})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 {
			t.Errorf("expected 1 match, got %d", len(result.Data))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("moving_period_invalidates_both_snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		companySvc := NewCompanyService(db)
		metricsSvc := NewMetricsService(db, companySvc)
		svc := NewTransactionService(db, companySvc, metricsSvc)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)
		tx := testutil.CreateTestTransaction(t, db, company.ID, &category.ID, 100, 3, 2025)

		// Warm both period caches
		_, err := metricsSvc.GetMetrics(user.ID, company.ID, 3, 2025)
		testutil.AssertNoError(t, err)
		_, err = metricsSvc.GetMetrics(user.ID, company.ID, 4, 2025)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateTransaction(user.ID, company.ID, tx.ID, TransactionInput{
			Description: tx.Description,
			Amount:      tx.Amount,
			Date:        time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
			CategoryID:  &category.ID,
		})
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.MetricsSnapshot{}).
			Where("company_id = ? AND period_year = ? AND period_month IN ?", company.ID, 2025, []int{3, 4}).
			Count(&count)
		if count != 0 {
			t.Errorf("expected both period snapshots to be invalidated, found %d", count)
		}

		reloaded, err := svc.GetTransactionByID(user.ID, company.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Month != 4 {
			t.Errorf("expected transaction moved to month 4, got %d", reloaded.Month)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCompanyService(db), nil)

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		_, err := svc.UpdateTransaction(user.ID, company.ID, "00000000-0000-0000-0000-000000000000", TransactionInput{
			Description: "x",
			Amount:      decimal.NewFromFloat(1),
			Date:        time.Now(),
		})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	companySvc := NewCompanyService(db)
	metricsSvc := NewMetricsService(db, companySvc)
	svc := NewTransactionService(db, companySvc, metricsSvc)

	user := testutil.CreateTestUser(t, db)
	company := testutil.CreateTestCompany(t, db, user.ID)
	category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)
	tx := testutil.CreateTestTransaction(t, db, company.ID, &category.ID, 100, 3, 2025)

	_, err := metricsSvc.GetMetrics(user.ID, company.ID, 3, 2025)
	testutil.AssertNoError(t, err)

	err = svc.DeleteTransaction(user.ID, company.ID, tx.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetTransactionByID(user.ID, company.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

	var count int64
	db.Model(&models.MetricsSnapshot{}).
		Where("company_id = ? AND period_month = ? AND period_year = ?", company.ID, 3, 2025).
		Count(&count)
	if count != 0 {
		t.Errorf("expected period snapshot to be invalidated, found %d", count)
	}
}
