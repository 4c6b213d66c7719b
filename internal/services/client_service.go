package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
)

// clientService handles client-related business logic.
type clientService struct {
	db             *gorm.DB
	companyService CompanyServicer
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB, companyService CompanyServicer) ClientServicer {
	return &clientService{db: db, companyService: companyService}
}

// CreateClient creates a new client for a company.
func (s *clientService) CreateClient(userID, companyID, name, email, phone string) (*models.Client, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	client := &models.Client{
		CompanyID: companyID,
		Name:      name,
		Email:     strings.ToLower(email),
		Phone:     phone,
		IsActive:  true,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return client, nil
}

// GetCompanyClients retrieves a paginated list of a company's clients.
func (s *clientService) GetCompanyClients(userID, companyID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Client], error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Client{}).Where("company_id = ?", companyID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var clients []models.Client
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(clients, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetClientByID retrieves a client by ID for a specific company.
func (s *clientService) GetClientByID(userID, companyID, clientID string) (*models.Client, error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	var client models.Client
	if err := s.db.Where("id = ? AND company_id = ?", clientID, companyID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &client, nil
}

// UpdateClient updates an existing client's fields.
func (s *clientService) UpdateClient(userID, companyID, clientID, name, email, phone string, isActive *bool) (*models.Client, error) {
	client, err := s.GetClientByID(userID, companyID, clientID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = strings.ToLower(email)
	}
	if phone != "" {
		updates["phone"] = phone
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(client).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return client, nil
}

// DeleteClient soft-deletes a client. Revenue transactions keep their
// client_id reference so past metrics remain reproducible.
func (s *clientService) DeleteClient(userID, companyID, clientID string) error {
	client, err := s.GetClientByID(userID, companyID, clientID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(client).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
