package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks an entry as operational or administrative.
// Uncategorized operational entries still surface as gross revenue in
// reports; administrative ones without a category are ignored.
type TransactionType string

const (
	TransactionTypeAdministrative TransactionType = "administrative"
	TransactionTypeOperational    TransactionType = "operational"
)

// Transaction represents a single financial event. Amount is always
// non-negative; direction is implied by the category's type.
type Transaction struct {
	Base
	CompanyID   string          `gorm:"type:uuid;not null;index" json:"company_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"transaction_date"`
	Month       int             `gorm:"not null;index:idx_transactions_period" json:"month"`
	Year        int             `gorm:"not null;index:idx_transactions_period" json:"year"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	ClientID    *string         `gorm:"type:uuid" json:"client_id,omitempty"`
	Type        TransactionType `gorm:"not null;default:operational" json:"transaction_type"`

	IsNewClient     bool `gorm:"default:false" json:"is_new_client"`
	IsMarketingCost bool `gorm:"default:false" json:"is_marketing_cost"`
	IsSalesCost     bool `gorm:"default:false" json:"is_sales_cost"`

	CreatedBy string `gorm:"type:uuid" json:"created_by,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
