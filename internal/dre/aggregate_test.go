package dre

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
)

// categorizedTx builds a transaction joined to a category of the given type.
func categorizedTx(amount float64, catType models.CategoryType, catName string) models.Transaction {
	return models.Transaction{
		Amount:   decimal.NewFromFloat(amount),
		Type:     models.TransactionTypeOperational,
		Category: &models.Category{Name: catName, Type: catType},
	}
}

func revenueTx(amount float64) models.Transaction {
	return categorizedTx(amount, models.CategoryTypeRevenue, "Vendas")
}

func costTx(amount float64) models.Transaction {
	return categorizedTx(amount, models.CategoryTypeCost, "CMV")
}

func expenseTx(amount float64, catName string) models.Transaction {
	return categorizedTx(amount, models.CategoryTypeExpense, catName)
}

func TestAggregateBuckets(t *testing.T) {
	totals, err := Aggregate([]models.Transaction{
		revenueTx(1000),
		revenueTx(500),
		costTx(300),
		expenseTx(120, "Aluguel"),
		expenseTx(80, "Despesas Financeiras"),
	})
	require.NoError(t, err)

	assert.InDelta(t, 1500, totals.GrossRevenue, 1e-9)
	assert.InDelta(t, 300, totals.CostOfGoods, 1e-9)
	assert.InDelta(t, 120, totals.OperatingExpenses, 1e-9)
	assert.InDelta(t, 80, totals.FinancialExpenses, 1e-9)
	assert.Zero(t, totals.Uncategorized)
}

func TestAggregateFinancialExpenseByName(t *testing.T) {
	// Case-insensitive substring match on the category name.
	for _, name := range []string{"Despesas Financeiras", "despesas FINANCEIRAS", "Taxa financeira banco"} {
		totals, err := Aggregate([]models.Transaction{expenseTx(50, name)})
		require.NoError(t, err)
		assert.InDelta(t, 50, totals.FinancialExpenses, 1e-9, "name %q", name)
		assert.Zero(t, totals.OperatingExpenses, "name %q", name)
	}
}

func TestAggregateExpenseSubtypeWinsOverName(t *testing.T) {
	// An explicit subtype overrides the name heuristic in both directions.
	tx := expenseTx(50, "Despesas Financeiras")
	tx.Category.ExpenseSubtype = models.ExpenseSubtypeOperational
	totals, err := Aggregate([]models.Transaction{tx})
	require.NoError(t, err)
	assert.InDelta(t, 50, totals.OperatingExpenses, 1e-9)
	assert.Zero(t, totals.FinancialExpenses)

	tx = expenseTx(50, "Tarifas")
	tx.Category.ExpenseSubtype = models.ExpenseSubtypeFinancial
	totals, err = Aggregate([]models.Transaction{tx})
	require.NoError(t, err)
	assert.InDelta(t, 50, totals.FinancialExpenses, 1e-9)
	assert.Zero(t, totals.OperatingExpenses)
}

func TestAggregateUncategorizedFallback(t *testing.T) {
	operational := models.Transaction{
		Amount: decimal.NewFromFloat(200),
		Type:   models.TransactionTypeOperational,
	}
	administrative := models.Transaction{
		Amount: decimal.NewFromFloat(75),
		Type:   models.TransactionTypeAdministrative,
	}

	totals, err := Aggregate([]models.Transaction{operational, administrative})
	require.NoError(t, err)

	// Uncategorized operational entries still surface as revenue, but are
	// tracked separately; administrative ones contribute to no bucket.
	assert.InDelta(t, 200, totals.GrossRevenue, 1e-9)
	assert.InDelta(t, 200, totals.Uncategorized, 1e-9)
	assert.Zero(t, totals.CostOfGoods)
	assert.Zero(t, totals.OperatingExpenses)
}

func TestAggregateRejectsNegativeAmount(t *testing.T) {
	tx := revenueTx(100)
	tx.Amount = decimal.NewFromFloat(-100)

	_, err := Aggregate([]models.Transaction{tx})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CALCULATION_ERROR", appErr.Code)
}

func TestAggregateEmptyInput(t *testing.T) {
	totals, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)
}
