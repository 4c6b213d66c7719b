package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db             *gorm.DB
	companyService CompanyServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, companyService CompanyServicer) CategoryServicer {
	return &categoryService{db: db, companyService: companyService}
}

// CreateCategory creates a new category for a company.
func (s *categoryService) CreateCategory(
	userID, companyID, name string,
	categoryType models.CategoryType,
	costClassification *models.CostClassification,
	expenseSubtype models.ExpenseSubtype,
	parentID *string,
	displayOrder int,
	color string,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	// Verify the company belongs to the user
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	// Check if a category with the same name already exists for this company
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("company_id = ? AND name = ?", companyID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	// Parent must exist, belong to the same company, and be a root category
	if parentID != nil {
		parent, err := s.getCompanyCategory(companyID, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, apperrors.ErrNestedParent
		}
	}

	category := &models.Category{
		CompanyID:          companyID,
		Name:               name,
		Type:               categoryType,
		CostClassification: costClassification,
		ExpenseSubtype:     expenseSubtype,
		ParentID:           parentID,
		DisplayOrder:       displayOrder,
		IsActive:           true,
		Color:              color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCompanyCategories retrieves a paginated list of a company's categories,
// optionally filtered by type.
func (s *categoryService) GetCompanyCategories(userID, companyID string, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("company_id = ?", companyID)
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("display_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for a specific company.
func (s *categoryService) GetCategoryByID(userID, companyID, categoryID string) (*models.Category, error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}
	return s.getCompanyCategory(companyID, categoryID)
}

// UpdateCategory updates an existing category. The category's type is
// immutable: reclassifying a category would silently rewrite every past
// income statement.
func (s *categoryService) UpdateCategory(
	userID, companyID, categoryID, name string,
	costClassification *models.CostClassification,
	expenseSubtype models.ExpenseSubtype,
	parentID *string,
	displayOrder *int,
	isActive *bool,
	color string,
) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, companyID, categoryID)
	if err != nil {
		return nil, err
	}

	if parentID != nil && *parentID != "" {
		if *parentID == categoryID {
			return nil, apperrors.ErrSelfParentCategory
		}
		parent, err := s.getCompanyCategory(companyID, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, apperrors.ErrNestedParent
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if costClassification != nil {
		updates["cost_classification"] = *costClassification
	}
	if expenseSubtype != "" {
		updates["expense_subtype"] = expenseSubtype
	}
	if parentID != nil {
		updates["parent_id"] = parentID
	}
	if displayOrder != nil {
		updates["display_order"] = *displayOrder
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. Existing transactions keep their
// category_id reference for historical records.
func (s *categoryService) DeleteCategory(userID, companyID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, companyID, categoryID)
	if err != nil {
		return err
	}

	// Reparent children to root instead of orphaning them
	if err := s.db.Model(&models.Category{}).
		Where("parent_id = ?", categoryID).
		Update("parent_id", nil).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *categoryService) getCompanyCategory(companyID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND company_id = ?", categoryID, companyID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}
