package model

import "fmt"

// Category splits fields into the two sides of the monthly budget.
type Category string

const (
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryIncome, CategoryExpense}

// ParseCategory accepts "income" or "expense" (and the plural "expenses").
func ParseCategory(s string) (Category, error) {
	switch s {
	case "income":
		return CategoryIncome, nil
	case "expense", "expenses":
		return CategoryExpense, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryIncome || c == CategoryExpense
}

// PayPeriod is the cadence a raw amount is denominated in.
type PayPeriod string

const (
	PayPeriodMonthly  PayPeriod = "monthly"
	PayPeriodBiweekly PayPeriod = "biweekly"
)

// Origin tells built-in fields apart from user-defined ones.
type Origin string

const (
	OriginFixed  Origin = "fixed"
	OriginCustom Origin = "custom"
)

// FieldDefinition describes one bubble field.
type FieldDefinition struct {
	Key       string
	Label     string
	Category  Category
	PayPeriod PayPeriod
	Origin    Origin
}

// IsBiweekly reports whether amounts for this field are per pay cheque.
func (f FieldDefinition) IsBiweekly() bool {
	return f.PayPeriod == PayPeriodBiweekly
}

// IsCustom reports whether the field was created by the user.
func (f FieldDefinition) IsCustom() bool {
	return f.Origin == OriginCustom
}
