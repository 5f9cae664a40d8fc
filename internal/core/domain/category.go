package domain

// CategoryType restricts which transaction types may use a category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Category classifies transactions. Default categories are shared seed data and can
// be neither modified nor deleted.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"` // Empty for default categories
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      string       `json:"color"`
	Icon       string       `json:"icon"`
	IsDefault  bool         `json:"isDefault"`
	AuditFields
}

// Accepts reports whether a transaction of type t may be filed under this category.
func (c Category) Accepts(t TransactionType) bool {
	switch c.Type {
	case CategoryTypeBoth:
		return true
	case CategoryTypeIncome:
		return t == Income
	case CategoryTypeExpense:
		return t == Expense
	}
	return false
}
