package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dreinfinity/internal/errors"
	"dreinfinity/internal/models"
)

// taxConfigService handles tax configuration business logic.
type taxConfigService struct {
	db             *gorm.DB
	companyService CompanyServicer
}

// NewTaxConfigService creates a new TaxConfigServicer.
func NewTaxConfigService(db *gorm.DB, companyService CompanyServicer) TaxConfigServicer {
	return &taxConfigService{db: db, companyService: companyService}
}

// GetTaxConfiguration returns the company's tax configuration, or (nil, nil)
// when none exists. Absence is not an error: the calculation engine resolves
// a missing configuration to statutory defaults.
func (s *taxConfigService) GetTaxConfiguration(userID, companyID string) (*models.TaxConfiguration, error) {
	if _, err := s.companyService.GetCompanyByID(userID, companyID); err != nil {
		return nil, err
	}

	var cfg models.TaxConfiguration
	if err := s.db.Where("company_id = ?", companyID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cfg, nil
}

// UpsertTaxConfiguration creates or fully replaces the company's tax
// configuration. Each company has at most one row.
func (s *taxConfigService) UpsertTaxConfiguration(userID, companyID string, input TaxConfigInput) (*models.TaxConfiguration, error) {
	if err := validateRates(input); err != nil {
		return nil, err
	}

	existing, err := s.GetTaxConfiguration(userID, companyID)
	if err != nil {
		return nil, err
	}

	cfg := &models.TaxConfiguration{
		CompanyID:               companyID,
		UseDAS:                  input.UseDAS,
		DASRate:                 input.DASRate,
		ICMSRate:                input.ICMSRate,
		IPIRate:                 input.IPIRate,
		PISRate:                 input.PISRate,
		COFINSRate:              input.COFINSRate,
		ISSRate:                 input.ISSRate,
		IRPJRate:                input.IRPJRate,
		IRPJAdditionalRate:      input.IRPJAdditionalRate,
		IRPJAdditionalThreshold: input.IRPJAdditionalThreshold,
		CSLLRate:                input.CSLLRate,
	}

	if existing != nil {
		cfg.Base = existing.Base
		if err := s.db.Save(cfg).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return cfg, nil
	}

	if err := s.db.Create(cfg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cfg, nil
}

// DeleteTaxConfiguration removes the company's tax configuration, reverting
// its reports to statutory default rates.
func (s *taxConfigService) DeleteTaxConfiguration(userID, companyID string) error {
	cfg, err := s.GetTaxConfiguration(userID, companyID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return apperrors.ErrNotFound
	}

	if err := s.db.Delete(cfg).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateRates rejects rates outside [0, 1] and negative thresholds.
func validateRates(input TaxConfigInput) error {
	rates := map[string]*float64{
		"das_rate":             input.DASRate,
		"icms_rate":            input.ICMSRate,
		"ipi_rate":             input.IPIRate,
		"pis_rate":             input.PISRate,
		"cofins_rate":          input.COFINSRate,
		"iss_rate":             input.ISSRate,
		"irpj_rate":            input.IRPJRate,
		"irpj_additional_rate": input.IRPJAdditionalRate,
		"csll_rate":            input.CSLLRate,
	}
	for name, rate := range rates {
		if rate != nil && (*rate < 0 || *rate > 1) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be between 0 and 1")
		}
	}
	if input.IRPJAdditionalThreshold != nil && *input.IRPJAdditionalThreshold < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "irpj_additional_threshold must not be negative")
	}
	return nil
}
