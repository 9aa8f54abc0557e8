// Package aggregate derives dashboard figures from the transaction list.
// Everything here is pure and recomputed on demand; nothing derived is
// ever persisted.
package aggregate

import (
	"math"
	"time"

	"github.com/hbarnes/penny/internal/budget"
	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/transaction"
)

// CategoryTotals groups expense transactions by category and sums their
// absolute amounts.
func CategoryTotals(txs []transaction.Transaction) map[category.Category]float64 {
	totals := make(map[category.Category]float64)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		totals[tx.Category] += math.Abs(tx.Amount)
	}

	return totals
}

// TotalIncome sums income transaction amounts.
func TotalIncome(txs []transaction.Transaction) float64 {
	var total float64

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome {
			total += tx.Amount
		}
	}

	return total
}

// TotalExpenses sums absolute expense amounts.
func TotalExpenses(txs []transaction.Transaction) float64 {
	var total float64

	for _, tx := range txs {
		if tx.Type == transaction.TypeExpense {
			total += math.Abs(tx.Amount)
		}
	}

	return total
}

// Progress is a budget with its derived spending state.
type Progress struct {
	Budget          budget.Budget
	Spent           float64
	Remaining       float64
	IsOverBudget    bool
	ProgressPercent float64
}

// BudgetProgress derives the spending state for one budget from the
// current transactions.
func BudgetProgress(b budget.Budget, txs []transaction.Transaction) Progress {
	spent := CategoryTotals(txs)[b.Category]

	var percent float64
	if b.Limit > 0 {
		percent = spent / b.Limit * 100
	}

	return Progress{
		Budget:          b,
		Spent:           spent,
		Remaining:       b.Limit - spent,
		IsOverBudget:    spent > b.Limit,
		ProgressPercent: percent,
	}
}

// Status is the overall three-valued budget outcome.
type Status string

const (
	StatusNoBudgets  Status = "No budgets set"
	StatusOnTrack    Status = "On Track"
	StatusOverBudget Status = "Over Budget"
)

// OverallStatus compares total spend across budgeted categories with the
// total limit. A zero total limit means no budgets are effectively set.
func OverallStatus(budgets []budget.Budget, txs []transaction.Transaction) Status {
	totals := CategoryTotals(txs)

	var totalLimit, totalSpent float64

	for _, b := range budgets {
		totalLimit += b.Limit
		totalSpent += totals[b.Category]
	}

	if totalLimit == 0 {
		return StatusNoBudgets
	}

	if totalSpent <= totalLimit {
		return StatusOnTrack
	}

	return StatusOverBudget
}

// DailySummary is the calendar view for one day.
type DailySummary struct {
	Income   float64
	Expenses float64
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// ForDay filters transactions to the exact calendar day and sums income
// and expenses separately.
func ForDay(txs []transaction.Transaction, day time.Time) ([]transaction.Transaction, DailySummary) {
	var (
		matched []transaction.Transaction
		summary DailySummary
	)

	for _, tx := range txs {
		if !SameDay(tx.Date, day) {
			continue
		}

		matched = append(matched, tx)

		if tx.Type == transaction.TypeIncome {
			summary.Income += tx.Amount
		} else {
			summary.Expenses += math.Abs(tx.Amount)
		}
	}

	return matched, summary
}
