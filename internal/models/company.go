package models

// TaxRegime identifies the simplified tax regime a company declares.
// Used only as a legacy fallback when no TaxConfiguration row exists.
type TaxRegime string

const (
	TaxRegimeSimplesNacional TaxRegime = "simples_nacional"
	TaxRegimeLucroPresumido  TaxRegime = "lucro_presumido"
	TaxRegimeLucroReal       TaxRegime = "lucro_real"
)

// Company is the tenant boundary: every category, client, transaction, tax
// configuration and goal belongs to exactly one company, owned by one user.
type Company struct {
	Base
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string     `gorm:"not null" json:"name"`
	CNPJ      string     `gorm:"size:18" json:"cnpj,omitempty"`
	TaxRegime *TaxRegime `json:"tax_regime,omitempty"`

	Categories   []Category    `gorm:"foreignKey:CompanyID" json:"categories,omitempty"`
	Clients      []Client      `gorm:"foreignKey:CompanyID" json:"clients,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CompanyID" json:"transactions,omitempty"`
	Goals        []Goal        `gorm:"foreignKey:CompanyID" json:"goals,omitempty"`
}
