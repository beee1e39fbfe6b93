package fields

import "github.com/twoloonies/loonies/internal/model"

// DefaultDefinitions returns the built-in income and expense fields.
func DefaultDefinitions() []model.FieldDefinition {
	return append(incomeFields(), expenseFields()...)
}

func incomeFields() []model.FieldDefinition {
	return []model.FieldDefinition{
		fixed(model.CategoryIncome, "biweeklyPaycheque", "Bi-weekly Paycheque", model.PayPeriodBiweekly),
		fixed(model.CategoryIncome, "rentalIncome", "Rental Income", model.PayPeriodMonthly),
		fixed(model.CategoryIncome, "investmentIncome", "Investment Income", model.PayPeriodMonthly),
		fixed(model.CategoryIncome, "sideHustle", "Side Hustle", model.PayPeriodMonthly),
		fixed(model.CategoryIncome, "governmentBenefits", "Government Benefits", model.PayPeriodMonthly),
	}
}

func expenseFields() []model.FieldDefinition {
	return []model.FieldDefinition{
		fixed(model.CategoryExpense, "rentMortgage", "Rent/Mortgage", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "groceries", "Groceries", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "restaurants", "Restaurants/Drinks", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "utilities", "Utilities", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "carPayment", "Car Payment", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "insurance", "Insurance", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "subscriptions", "Subscriptions", model.PayPeriodMonthly),
		fixed(model.CategoryExpense, "miscellaneous", "Miscellaneous", model.PayPeriodMonthly),
	}
}

func fixed(cat model.Category, key, label string, period model.PayPeriod) model.FieldDefinition {
	return model.FieldDefinition{
		Key:       key,
		Label:     label,
		Category:  cat,
		PayPeriod: period,
		Origin:    model.OriginFixed,
	}
}
