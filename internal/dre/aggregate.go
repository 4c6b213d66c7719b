package dre

import (
	"fmt"
	"math"
	"strings"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
)

// financialNameMarker is the legacy heuristic for expense categories created
// before the expense_subtype column existed: a category name containing this
// substring (case-insensitive) routes to financial expenses.
const financialNameMarker = "financeira"

// Totals holds the five income-statement buckets produced by aggregation.
// Uncategorized tracks the portion of GrossRevenue that came from
// uncategorized operational entries, so callers can surface the fallback
// instead of silently inflating revenue.
type Totals struct {
	GrossRevenue      float64 `json:"gross_revenue"`
	CostOfGoods       float64 `json:"cost_of_goods"`
	OperatingExpenses float64 `json:"operating_expenses"`
	FinancialExpenses float64 `json:"financial_expenses"`
	FinancialRevenue  float64 `json:"financial_revenue"`
	Uncategorized     float64 `json:"uncategorized"`
}

// Aggregate sums a period's transactions into income-statement buckets.
// Classification precedence per transaction:
//
//  1. revenue category        -> gross revenue
//  2. cost category           -> cost of goods
//  3. expense category        -> financial or operating expenses
//  4. no category, operational -> gross revenue (tracked in Uncategorized)
//  5. anything else           -> ignored
//
// Returns ErrCalculation if any amount is malformed (negative or non-finite).
func Aggregate(transactions []models.Transaction) (Totals, error) {
	var totals Totals

	for i := range transactions {
		t := &transactions[i]
		amount, err := transactionAmount(t)
		if err != nil {
			return Totals{}, err
		}

		switch {
		case t.Category != nil && t.Category.Type == models.CategoryTypeRevenue:
			totals.GrossRevenue += amount
		case t.Category != nil && t.Category.Type == models.CategoryTypeCost:
			totals.CostOfGoods += amount
		case t.Category != nil && t.Category.Type == models.CategoryTypeExpense:
			if isFinancialExpense(t.Category) {
				totals.FinancialExpenses += amount
			} else {
				totals.OperatingExpenses += amount
			}
		case t.Category == nil && t.Type == models.TransactionTypeOperational:
			totals.GrossRevenue += amount
			totals.Uncategorized += amount
		}
	}

	return totals, nil
}

// isFinancialExpense reports whether an expense category belongs to the
// financial result rather than operations. The explicit subtype wins; the
// name heuristic only covers rows that predate the column.
func isFinancialExpense(category *models.Category) bool {
	switch category.ExpenseSubtype {
	case models.ExpenseSubtypeFinancial:
		return true
	case models.ExpenseSubtypeOperational:
		return false
	}
	return strings.Contains(strings.ToLower(category.Name), financialNameMarker)
}

// transactionAmount converts the stored decimal amount to float64 and
// validates it. Amounts are stored non-negative; sign is implied by the
// category type.
func transactionAmount(t *models.Transaction) (float64, error) {
	amount := t.Amount.InexactFloat64()
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperrors.Wrap(apperrors.ErrCalculation,
			fmt.Errorf("transaction %s: non-finite amount", t.ID))
	}
	if amount < 0 {
		return 0, apperrors.Wrap(apperrors.ErrCalculation,
			fmt.Errorf("transaction %s: negative amount %v", t.ID, amount))
	}
	return amount, nil
}
