package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/services"
)

// TaxConfigHandler handles tax configuration requests.
type TaxConfigHandler struct {
	taxConfigService services.TaxConfigServicer
	auditService     services.AuditServicer
}

// NewTaxConfigHandler creates a new TaxConfigHandler.
func NewTaxConfigHandler(taxConfigService services.TaxConfigServicer, auditService services.AuditServicer) *TaxConfigHandler {
	return &TaxConfigHandler{taxConfigService: taxConfigService, auditService: auditService}
}

// TaxConfigRequest represents the request payload for creating or replacing
// a company's tax configuration. Omitted rates keep the statutory defaults.
type TaxConfigRequest struct {
	UseDAS     bool     `json:"use_das"`
	DASRate    *float64 `json:"das_rate" binding:"omitempty,min=0,max=1"`
	ICMSRate   *float64 `json:"icms_rate" binding:"omitempty,min=0,max=1"`
	IPIRate    *float64 `json:"ipi_rate" binding:"omitempty,min=0,max=1"`
	PISRate    *float64 `json:"pis_rate" binding:"omitempty,min=0,max=1"`
	COFINSRate *float64 `json:"cofins_rate" binding:"omitempty,min=0,max=1"`
	ISSRate    *float64 `json:"iss_rate" binding:"omitempty,min=0,max=1"`

	IRPJRate                *float64 `json:"irpj_rate" binding:"omitempty,min=0,max=1"`
	IRPJAdditionalRate      *float64 `json:"irpj_additional_rate" binding:"omitempty,min=0,max=1"`
	IRPJAdditionalThreshold *float64 `json:"irpj_additional_threshold" binding:"omitempty,min=0"`
	CSLLRate                *float64 `json:"csll_rate" binding:"omitempty,min=0,max=1"`
}

// GetTaxConfig handles retrieving a company's tax configuration.
// @Summary     Get tax configuration
// @Description Get the company's tax configuration; null when none exists
// @Tags        tax-configuration
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path string true "Company ID"
// @Success     200 {object} models.TaxConfiguration "Tax configuration (null if not set)"
// @Failure     400 {object} ErrorResponse "Invalid company ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/tax-configuration [get]
func (h *TaxConfigHandler) GetTaxConfig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	cfg, err := h.taxConfigService.GetTaxConfiguration(userID, companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tax_configuration": cfg})
}

// UpsertTaxConfig handles creating or replacing a company's tax configuration.
// @Summary     Set tax configuration
// @Description Create or replace the company's tax configuration
// @Tags        tax-configuration
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path string           true "Company ID"
// @Param       request    body TaxConfigRequest true "Tax configuration"
// @Success     200 {object} models.TaxConfiguration "Tax configuration saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/tax-configuration [put]
func (h *TaxConfigHandler) UpsertTaxConfig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg, err := h.taxConfigService.UpsertTaxConfiguration(userID, companyID, services.TaxConfigInput{
		UseDAS:                  req.UseDAS,
		DASRate:                 req.DASRate,
		ICMSRate:                req.ICMSRate,
		IPIRate:                 req.IPIRate,
		PISRate:                 req.PISRate,
		COFINSRate:              req.COFINSRate,
		ISSRate:                 req.ISSRate,
		IRPJRate:                req.IRPJRate,
		IRPJAdditionalRate:      req.IRPJAdditionalRate,
		IRPJAdditionalThreshold: req.IRPJAdditionalThreshold,
		CSLLRate:                req.CSLLRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_TAX_CONFIG", "tax_configuration", cfg.ID, c.ClientIP(),
		map[string]interface{}{"use_das": req.UseDAS})

	c.JSON(http.StatusOK, gin.H{"tax_configuration": cfg})
}

// DeleteTaxConfig handles removing a company's tax configuration.
// @Summary     Delete tax configuration
// @Description Remove the company's tax configuration, reverting to statutory defaults
// @Tags        tax-configuration
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       company_id path string true "Company ID"
// @Success     200 {object} MessageResponse "Tax configuration deleted"
// @Failure     400 {object} ErrorResponse "Invalid company ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tax configuration not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{company_id}/tax-configuration [delete]
func (h *TaxConfigHandler) DeleteTaxConfig(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	companyID, err := parsePathID(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taxConfigService.DeleteTaxConfiguration(userID, companyID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TAX_CONFIG", "tax_configuration", companyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tax configuration deleted successfully"})
}
