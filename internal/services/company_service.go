package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
)

// companyService handles company-related business logic.
type companyService struct {
	db *gorm.DB
}

// NewCompanyService creates a new CompanyServicer.
func NewCompanyService(db *gorm.DB) CompanyServicer {
	return &companyService{db: db}
}

// CreateCompany creates a new company owned by the user.
func (s *companyService) CreateCompany(userID, name, cnpj string, taxRegime *models.TaxRegime) (*models.Company, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company name is required")
	}

	company := &models.Company{
		UserID:    userID,
		Name:      name,
		CNPJ:      cnpj,
		TaxRegime: taxRegime,
	}

	if err := s.db.Create(company).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return company, nil
}

// GetUserCompanies retrieves a paginated list of the user's companies.
func (s *companyService) GetUserCompanies(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	page.Defaults()

	base := s.db.Model(&models.Company{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var companies []models.Company
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(companies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCompanyByID retrieves a company by ID if it belongs to the user. This
// is the ownership check every company-scoped servicer goes through.
func (s *companyService) GetCompanyByID(userID, companyID string) (*models.Company, error) {
	var company models.Company
	if err := s.db.Where("id = ? AND user_id = ?", companyID, userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &company, nil
}

// UpdateCompany updates an existing company's fields.
func (s *companyService) UpdateCompany(userID, companyID, name, cnpj string, taxRegime *models.TaxRegime) (*models.Company, error) {
	company, err := s.GetCompanyByID(userID, companyID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if cnpj != "" {
		updates["cnpj"] = cnpj
	}
	if taxRegime != nil {
		updates["tax_regime"] = *taxRegime
	}

	if len(updates) > 0 {
		if err := s.db.Model(company).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return company, nil
}

// DeleteCompany soft-deletes a company. Its categories, clients,
// transactions and goals remain for historical records but become
// unreachable through the API.
func (s *companyService) DeleteCompany(userID, companyID string) error {
	company, err := s.GetCompanyByID(userID, companyID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(company).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
