package models

import (
	"github.com/shopspring/decimal"
)

// BudgetCategory is one row of the budget overview.
type BudgetCategory struct {
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	BudgetCap    float64 `json:"budgetCap"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"isOverBudget"`
}

type Transaction struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Date        string  `json:"date"`
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaymentMode string  `json:"paymentMode"`
	IsSimulated bool    `json:"isSimulated"`
}

// NewBudgetCategory derives percentage and over-budget status from amount and cap.
func NewBudgetCategory(category string, amount, budgetCap float64) BudgetCategory {
	return BudgetCategory{
		Category:     category,
		Amount:       amount,
		BudgetCap:    budgetCap,
		Percentage:   Percentage(amount, budgetCap),
		IsOverBudget: amount > budgetCap,
	}
}

// WithCap returns a copy of c recomputed against a different cap.
func (c BudgetCategory) WithCap(budgetCap float64) BudgetCategory {
	return NewBudgetCategory(c.Category, c.Amount, budgetCap)
}

// Percentage returns amount/budgetCap*100 rounded to two decimals, or 0 for a
// non-positive cap.
func Percentage(amount, budgetCap float64) float64 {
	if budgetCap <= 0 {
		return 0
	}
	p, _ := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(budgetCap)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return p
}

type categoryCap struct {
	category string
	cap      float64
}

var defaultCaps = map[SpendingPersonality][]categoryCap{
	HeavySpender: {
		{"Entertainment", 12000},
		{"Dining", 10000},
		{"Groceries", 12000},
		{"Shopping", 15000},
		{"Transport", 4000},
	},
	MediumSpender: {
		{"Dining", 6000},
		{"Groceries", 7000},
		{"savings", 25000},
		{"Shopping", 20000},
		{"Transport", 6000},
	},
	MaxSaver: {
		{"Transport", 5000},
		{"Groceries", 6000},
		{"travel", 4000},
		{"utilities", 7000},
		{"savings", 6000},
	},
}

var fallbackAmounts = map[SpendingPersonality][]float64{
	HeavySpender:  {37988, 11286, 18858, 28483, 2602},
	MediumSpender: {9873, 10251, 20502, 22321, 12899},
	MaxSaver:      {14966, 9183, 7145, 6060, 5092},
}

func capsFor(p SpendingPersonality) []categoryCap {
	if caps, ok := defaultCaps[p]; ok {
		return caps
	}
	return defaultCaps[MaxSaver]
}

// DefaultBudgetCaps returns the persona template caps. Unknown personalities
// get the Max Saver template.
func DefaultBudgetCaps(p SpendingPersonality) map[string]float64 {
	caps := capsFor(p)
	out := make(map[string]float64, len(caps))
	for _, c := range caps {
		out[c.category] = c.cap
	}
	return out
}

// FallbackBudget is the canned overview shown when the backend has none.
func FallbackBudget(p SpendingPersonality) []BudgetCategory {
	if _, ok := defaultCaps[p]; !ok {
		p = MaxSaver
	}
	caps := defaultCaps[p]
	amounts := fallbackAmounts[p]
	out := make([]BudgetCategory, len(caps))
	for i, c := range caps {
		out[i] = NewBudgetCategory(c.category, amounts[i], c.cap)
	}
	return out
}

var categoryAliases = map[string]string{
	"Food & Dining": "Dining",
	"food & dining": "Dining",
	"food":          "Dining",
	"entertainment": "Entertainment",
	"transport":     "Transport",
	"shopping":      "Shopping",
	"groceries":     "Groceries",
}

// NormalizeCategory maps transaction category spellings onto budget categories.
func NormalizeCategory(category string) string {
	if alias, ok := categoryAliases[category]; ok {
		return alias
	}
	return category
}

// BudgetFromTransactions totals transactions per category against the persona caps.
func BudgetFromTransactions(p SpendingPersonality, transactions []Transaction) []BudgetCategory {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Category == "" {
			continue
		}
		totals[NormalizeCategory(t.Category)] += t.Amount
	}

	caps := capsFor(p)
	out := make([]BudgetCategory, len(caps))
	for i, c := range caps {
		out[i] = NewBudgetCategory(c.category, totals[c.category], c.cap)
	}
	return out
}
