package models

// Client represents a customer of a company. Revenue transactions may
// reference a client so unit-economics metrics can track purchase frequency
// and retention per customer.
type Client struct {
	Base
	CompanyID string `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:ClientID" json:"transactions,omitempty"`
}
