package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
	"dreinfinity/internal/pagination"
	"dreinfinity/internal/services"
)

// CompanyHandler handles company-related requests.
type CompanyHandler struct {
	companyService services.CompanyServicer
	auditService   services.AuditServicer
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService services.CompanyServicer, auditService services.AuditServicer) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, auditService: auditService}
}

// CreateCompanyRequest represents the request payload for creating a company.
type CreateCompanyRequest struct {
	Name      string            `json:"name" binding:"required,min=1,max=255"`
	CNPJ      string            `json:"cnpj" binding:"omitempty,cnpj"`
	TaxRegime *models.TaxRegime `json:"tax_regime" binding:"omitempty,tax_regime"`
}

// UpdateCompanyRequest represents the request payload for updating a company.
type UpdateCompanyRequest struct {
	Name      string            `json:"name" binding:"omitempty,min=1,max=255"`
	CNPJ      string            `json:"cnpj" binding:"omitempty,cnpj"`
	TaxRegime *models.TaxRegime `json:"tax_regime" binding:"omitempty,tax_regime"`
}

// CreateCompany handles the creation of a new company.
// @Summary     Create a company
// @Description Create a new company owned by the authenticated user
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCompanyRequest true "Company details"
// @Success     201 {object} models.Company "Company created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, err := h.companyService.CreateCompany(userID, req.Name, req.CNPJ, req.TaxRegime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_COMPANY", "company", company.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// GetCompanies handles listing the user's companies.
// @Summary     Get companies
// @Description Get a paginated list of the authenticated user's companies
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Company] "Paginated companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies [get]
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.companyService.GetUserCompanies(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCompany handles retrieving a specific company.
// @Summary     Get company by ID
// @Description Get a specific company by ID
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} models.Company "Company details"
// @Failure     400 {object} ErrorResponse "Invalid company ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	company, err := h.companyService.GetCompanyByID(userID, companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// UpdateCompany handles updating an existing company.
// @Summary     Update company
// @Description Update an existing company
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Company ID"
// @Param       request body UpdateCompanyRequest true "Updated company details"
// @Success     200 {object} models.Company "Updated company"
// @Failure     400 {object} ErrorResponse "Invalid input or company ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, err := h.companyService.UpdateCompany(userID, companyID, req.Name, req.CNPJ, req.TaxRegime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_COMPANY", "company", companyID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// DeleteCompany handles deleting a company.
// @Summary     Delete company
// @Description Delete a company by ID (soft delete)
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} MessageResponse "Company deleted"
// @Failure     400 {object} ErrorResponse "Invalid company ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.companyService.DeleteCompany(userID, companyID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_COMPANY", "company", companyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
