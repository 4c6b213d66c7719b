package dre

import "dreinfinity/internal/models"

// Statutory default rates, applied field-by-field whenever the company's tax
// configuration leaves a rate unset. A partially filled configuration mixes
// custom and default rates.
const (
	DefaultICMSRate                = 0.18
	DefaultIPIRate                 = 0.10
	DefaultPISRate                 = 0.0165
	DefaultCOFINSRate              = 0.076
	DefaultISSRate                 = 0.05
	DefaultDASRate                 = 0.06
	DefaultIRPJRate                = 0.15
	DefaultIRPJAdditionalRate      = 0.10
	DefaultIRPJAdditionalThreshold = 20000.0
	DefaultCSLLRate                = 0.09
)

// Rates is a fully resolved tax rate sheet. Exactly one sales-tax path is
// active: DAS when UseDAS is set, the five itemized rates otherwise.
type Rates struct {
	UseDAS bool

	DAS    float64
	ICMS   float64
	IPI    float64
	PIS    float64
	COFINS float64
	ISS    float64

	IRPJ                    float64
	IRPJAdditional          float64
	IRPJAdditionalThreshold float64
	CSLL                    float64
}

// DefaultRates returns the fully defaulted, non-DAS rate sheet.
func DefaultRates() Rates {
	return Rates{
		DAS:                     DefaultDASRate,
		ICMS:                    DefaultICMSRate,
		IPI:                     DefaultIPIRate,
		PIS:                     DefaultPISRate,
		COFINS:                  DefaultCOFINSRate,
		ISS:                     DefaultISSRate,
		IRPJ:                    DefaultIRPJRate,
		IRPJAdditional:          DefaultIRPJAdditionalRate,
		IRPJAdditionalThreshold: DefaultIRPJAdditionalThreshold,
		CSLL:                    DefaultCSLLRate,
	}
}

// ResolveRates turns a (possibly nil, possibly partial) tax configuration
// into a fully resolved rate sheet. Absence is a valid state and never an
// error.
func ResolveRates(cfg *models.TaxConfiguration) Rates {
	rates := DefaultRates()
	if cfg == nil {
		return rates
	}

	rates.UseDAS = cfg.UseDAS
	rates.DAS = orDefault(cfg.DASRate, DefaultDASRate)
	rates.ICMS = orDefault(cfg.ICMSRate, DefaultICMSRate)
	rates.IPI = orDefault(cfg.IPIRate, DefaultIPIRate)
	rates.PIS = orDefault(cfg.PISRate, DefaultPISRate)
	rates.COFINS = orDefault(cfg.COFINSRate, DefaultCOFINSRate)
	rates.ISS = orDefault(cfg.ISSRate, DefaultISSRate)
	rates.IRPJ = orDefault(cfg.IRPJRate, DefaultIRPJRate)
	rates.IRPJAdditional = orDefault(cfg.IRPJAdditionalRate, DefaultIRPJAdditionalRate)
	rates.IRPJAdditionalThreshold = orDefault(cfg.IRPJAdditionalThreshold, DefaultIRPJAdditionalThreshold)
	rates.CSLL = orDefault(cfg.CSLLRate, DefaultCSLLRate)
	return rates
}

// LegacyRegimeRates approximates a company's deductions with a single flat
// rate on gross revenue, expressed as a DAS-mode sheet so the rest of the
// engine needs no special case. Kept only as a fallback for companies that
// declare a tax regime but have no tax configuration row.
func LegacyRegimeRates(regime models.TaxRegime) Rates {
	rates := DefaultRates()
	rates.UseDAS = true
	switch regime {
	case models.TaxRegimeSimplesNacional:
		rates.DAS = 0.06
	case models.TaxRegimeLucroPresumido:
		rates.DAS = 0.138
	case models.TaxRegimeLucroReal:
		rates.DAS = 0.34
	}
	return rates
}

// SalesDeductions itemizes the sales-tax deduction on the given gross
// revenue. Exactly one path contributes: the inactive path's components are
// all zero, and Total is the sum of the active path's components.
func (r Rates) SalesDeductions(grossRevenue float64) Deductions {
	var d Deductions
	if r.UseDAS {
		d.DAS = grossRevenue * r.DAS
		d.Total = d.DAS
		return d
	}
	d.ICMS = grossRevenue * r.ICMS
	d.IPI = grossRevenue * r.IPI
	d.PIS = grossRevenue * r.PIS
	d.COFINS = grossRevenue * r.COFINS
	d.ISS = grossRevenue * r.ISS
	d.Total = d.ICMS + d.IPI + d.PIS + d.COFINS + d.ISS
	return d
}

// NetRevenue is the single authoritative gross-to-net conversion, shared by
// the statement and metrics calculators.
func (r Rates) NetRevenue(grossRevenue float64) float64 {
	return grossRevenue - r.SalesDeductions(grossRevenue).Total
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
