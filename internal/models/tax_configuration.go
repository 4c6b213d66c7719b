package models

// TaxConfiguration is the per-company rate sheet. Every rate is nullable:
// a missing field means "use the statutory default", resolved field-by-field
// by the calculation engine, so a partially filled row mixes custom and
// default rates.
//
// When UseDAS is true only the DAS rate applies to gross revenue; otherwise
// the five itemized sales taxes (ICMS, IPI, PIS, COFINS, ISS) are summed.
type TaxConfiguration struct {
	Base
	CompanyID string `gorm:"type:uuid;not null;uniqueIndex" json:"company_id"`
	UseDAS    bool   `gorm:"default:false" json:"use_das"`

	DASRate    *float64 `json:"das_rate,omitempty"`
	ICMSRate   *float64 `json:"icms_rate,omitempty"`
	IPIRate    *float64 `json:"ipi_rate,omitempty"`
	PISRate    *float64 `json:"pis_rate,omitempty"`
	COFINSRate *float64 `json:"cofins_rate,omitempty"`
	ISSRate    *float64 `json:"iss_rate,omitempty"`

	IRPJRate                *float64 `json:"irpj_rate,omitempty"`
	IRPJAdditionalRate      *float64 `json:"irpj_additional_rate,omitempty"`
	IRPJAdditionalThreshold *float64 `json:"irpj_additional_threshold,omitempty"`
	CSLLRate                *float64 `json:"csll_rate,omitempty"`
}
