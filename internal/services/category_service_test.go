package services

import (
	"testing"

	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
	"dreinfinity/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		variable := models.CostClassificationVariable
		category, err := svc.CreateCategory(user.ID, company.ID, "Matéria-prima",
			models.CategoryTypeCost, &variable, "", nil, 1, "#FF5722")
		testutil.AssertNoError(t, err)

		if category.Type != models.CategoryTypeCost {
			t.Errorf("expected cost category, got %s", category.Type)
		}
		if category.CostClassification == nil || *category.CostClassification != models.CostClassificationVariable {
			t.Error("expected variable cost classification")
		}
		if !category.IsActive {
			t.Error("expected new category to be active")
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		_, err := svc.CreateCategory(user.ID, company.ID, "Vendas", models.CategoryTypeRevenue, nil, "", nil, 0, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, company.ID, "Vendas", models.CategoryTypeRevenue, nil, "", nil, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_company", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, owner.ID)

		_, err := svc.CreateCategory(intruder.ID, company.ID, "Vendas", models.CategoryTypeRevenue, nil, "", nil, 0, "")
		testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")
	})

	t.Run("nested_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		root, err := svc.CreateCategory(user.ID, company.ID, "Despesas", models.CategoryTypeExpense, nil, "", nil, 0, "")
		testutil.AssertNoError(t, err)

		child, err := svc.CreateCategory(user.ID, company.ID, "Aluguel", models.CategoryTypeExpense, nil, "", &root.ID, 0, "")
		testutil.AssertNoError(t, err)

		// A child cannot itself become a parent: one level only.
		_, err = svc.CreateCategory(user.ID, company.ID, "Condomínio", models.CategoryTypeExpense, nil, "", &child.ID, 0, "")
		testutil.AssertAppError(t, err, "NESTED_PARENT")
	})
}

func TestGetCompanyCategories(t *testing.T) {
	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)
		testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeCost)
		testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeCost)

		costType := models.CategoryTypeCost
		result, err := svc.GetCompanyCategories(user.ID, company.ID, pagination.PageRequest{}, &costType)
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Errorf("expected 2 cost categories, got %d", len(result.Data))
		}
	})

	t.Run("all_types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeRevenue)
		testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeExpense)

		result, err := svc.GetCompanyCategories(user.ID, company.ID, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Errorf("expected 2 categories, got %d", len(result.Data))
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("self_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(user.ID, company.ID, category.ID, "", nil, "", &category.ID, nil, nil, "")
		testutil.AssertAppError(t, err, "SELF_PARENT_CATEGORY")
	})

	t.Run("updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, company.ID, models.CategoryTypeExpense)

		inactive := false
		order := 7
		_, err := svc.UpdateCategory(user.ID, company.ID, category.ID, "Renomeada", nil, models.ExpenseSubtypeFinancial, nil, &order, &inactive, "#000000")
		testutil.AssertNoError(t, err)

		var reloaded models.Category
		db.First(&reloaded, "id = ?", category.ID)
		if reloaded.Name != "Renomeada" {
			t.Errorf("expected renamed category, got %s", reloaded.Name)
		}
		if reloaded.ExpenseSubtype != models.ExpenseSubtypeFinancial {
			t.Errorf("expected financial subtype, got %s", reloaded.ExpenseSubtype)
		}
		if reloaded.DisplayOrder != 7 {
			t.Errorf("expected display order 7, got %d", reloaded.DisplayOrder)
		}
		if reloaded.IsActive {
			t.Error("expected category to be deactivated")
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("reparents_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		root, err := svc.CreateCategory(user.ID, company.ID, "Despesas", models.CategoryTypeExpense, nil, "", nil, 0, "")
		testutil.AssertNoError(t, err)
		child, err := svc.CreateCategory(user.ID, company.ID, "Aluguel", models.CategoryTypeExpense, nil, "", &root.ID, 0, "")
		testutil.AssertNoError(t, err)

		err = svc.DeleteCategory(user.ID, company.ID, root.ID)
		testutil.AssertNoError(t, err)

		var reloaded models.Category
		db.First(&reloaded, "id = ?", child.ID)
		if reloaded.ParentID != nil {
			t.Error("expected child to be reparented to root")
		}

		_, err = svc.GetCategoryByID(user.ID, company.ID, root.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, NewCompanyService(db))

		user := testutil.CreateTestUser(t, db)
		company := testutil.CreateTestCompany(t, db, user.ID)

		err := svc.DeleteCategory(user.ID, company.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
