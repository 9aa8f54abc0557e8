// Package insight turns the expense history into a text blob and asks
// an external text-generation service for savings tips.
package insight

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hbarnes/penny/internal/currency"
	"github.com/hbarnes/penny/internal/transaction"
)

// ErrNoExpenses is returned when there is nothing to analyze. The check
// happens before any external call is made.
var ErrNoExpenses = errors.New("no expense data available to generate suggestions")

//go:generate mockgen -source=insight.go -destination=generator_mock.go -package=insight

// Generator produces savings tips from serialized spending data.
type Generator interface {
	SavingsTips(ctx context.Context, spendingData string) (string, error)
}

// Service builds spending summaries and requests tips. Failures are
// surfaced to the caller as-is; there is no retry.
type Service struct {
	transactions *transaction.Service
	currencies   *currency.Service
	gen          Generator
}

func NewService(transactions *transaction.Service, currencies *currency.Service, gen Generator) *Service {
	return &Service{
		transactions: transactions,
		currencies:   currencies,
		gen:          gen,
	}
}

// GenerateTips serializes the current expenses and submits them. An
// empty expense history is rejected locally.
func (s *Service) GenerateTips(ctx context.Context) (string, error) {
	expenses := s.transactions.Expenses()
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}

	data := BuildSpendingData(expenses, s.currencies.Selected().Code)

	tips, err := s.gen.SavingsTips(ctx, data)
	if err != nil {
		return "", fmt.Errorf("generating savings tips: %w", err)
	}

	return tips, nil
}

// BuildSpendingData joins expense transactions into one line each:
// "date: description (category) - CODE amount". Amounts are absolute
// values; the currency code rides along so the remote model can reason
// across currencies without symbols.
func BuildSpendingData(expenses []transaction.Transaction, code currency.Code) string {
	lines := make([]string, 0, len(expenses))

	for _, tx := range expenses {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		lines = append(lines, fmt.Sprintf("%s: %s (%s) - %s %.2f",
			tx.Date.Format("2006-01-02"), tx.Description, tx.Category, code, math.Abs(tx.Amount)))
	}

	return strings.Join(lines, "\n")
}
