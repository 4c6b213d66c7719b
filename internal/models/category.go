package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeRevenue CategoryType = "revenue"
	CategoryTypeCost    CategoryType = "cost"
	CategoryTypeExpense CategoryType = "expense"
)

// CostClassification splits costs and expenses into fixed and variable for
// break-even and contribution margin calculations.
type CostClassification string

const (
	CostClassificationFixed    CostClassification = "fixed"
	CostClassificationVariable CostClassification = "variable"
)

// ExpenseSubtype distinguishes operating from financial expenses. Older rows
// may leave it empty, in which case classification falls back to the legacy
// category-name heuristic (a name containing "financeira").
type ExpenseSubtype string

const (
	ExpenseSubtypeOperational ExpenseSubtype = "operational"
	ExpenseSubtypeFinancial   ExpenseSubtype = "financial"
)

// Category classifies transactions into income-statement lines.
// The category's type implies the sign of its transactions; amounts are
// always stored non-negative.
type Category struct {
	Base
	CompanyID          string              `gorm:"type:uuid;not null;index" json:"company_id"`
	Name               string              `gorm:"not null" json:"name"`
	Type               CategoryType        `gorm:"not null" json:"category_type"`
	CostClassification *CostClassification `json:"cost_classification,omitempty"`
	ExpenseSubtype     ExpenseSubtype      `json:"expense_subtype,omitempty"`
	ParentID           *string             `gorm:"type:uuid" json:"parent_id,omitempty"`
	DisplayOrder       int                 `gorm:"default:0" json:"display_order"`
	IsActive           bool                `gorm:"default:true" json:"is_active"`
	Color              string              `json:"color,omitempty"`

	Parent       *Category     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
