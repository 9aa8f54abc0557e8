package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/category"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a financial transaction. Amounts are signed:
// positive for income, negative for expenses. The two are linked by
// invariant, never independent. Amount, date and type are immutable
// after creation; only the category can change.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    category.Category `json:"category"`
	Amount      float64           `json:"amount"`
	Type        Type              `json:"type"`
}

// EntityID implements store.Entity.
func (t Transaction) EntityID() uuid.UUID { return t.ID }
