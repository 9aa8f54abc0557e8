package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/storage"
	"github.com/hbarnes/penny/internal/store"
)

// SlotKey is the durable slot holding the serialized transaction list.
const SlotKey = "expenseTrackerTransactions"

var (
	ErrMissingDescription = errors.New("description is required")
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidAmount      = errors.New("amount must be positive for income and negative for expenses")
)

// Service owns the transaction collection: newest first, persisted to
// its slot on every mutation.
type Service struct {
	col *store.Collection[Transaction]
	now func() time.Time
}

func NewService(slot storage.Slot) *Service {
	return &Service{
		col: store.New(slot, SlotKey, func(a, b Transaction) bool {
			return a.Date.After(b.Date)
		}),
		now: time.Now,
	}
}

// Load populates the collection from durable storage. It never fails
// startup; corrupt data resets the collection and surfaces on Err.
func (s *Service) Load(ctx context.Context) {
	s.col.Load(ctx)
}

// CreateParams describes a manually entered transaction. Date is
// optional; absent dates default to the entry time.
type CreateParams struct {
	Description string
	Category    category.Category
	Amount      float64
	Type        Type
	Date        *time.Time
}

// Validate checks the entry against the model invariants: description
// present, category known, amount sign matching the type.
func (p CreateParams) Validate() error {
	if p.Description == "" {
		return ErrMissingDescription
	}

	if !category.Valid(p.Category) {
		return ErrInvalidCategory
	}

	switch p.Type {
	case TypeIncome:
		if p.Amount <= 0 {
			return ErrInvalidAmount
		}
	case TypeExpense:
		if p.Amount >= 0 {
			return ErrInvalidAmount
		}
	default:
		return ErrInvalidAmount
	}

	return nil
}

// Add validates the entry, assigns it a fresh identifier and inserts it
// into the date-descending collection. A persist failure means the
// transaction was not retained and is returned to the caller.
func (s *Service) Add(ctx context.Context, params CreateParams) (Transaction, error) {
	if err := params.Validate(); err != nil {
		return Transaction{}, err
	}

	date := s.now()
	if params.Date != nil {
		date = *params.Date
	}

	tx := Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: params.Description,
		Category:    params.Category,
		Amount:      params.Amount,
		Type:        params.Type,
	}

	if err := s.col.Add(ctx, tx); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// UpdateCategory reassigns a transaction's category. It is the only
// permitted mutation; unknown ids are a silent no-op.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, newCategory category.Category) error {
	if !category.Valid(newCategory) {
		return ErrInvalidCategory
	}

	return s.col.Update(ctx, id, func(tx Transaction) Transaction {
		tx.Category = newCategory
		return tx
	})
}

// ClearAll wipes the history and removes the slot so the next load is a
// first run.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.col.ClearAll(ctx)
}

// List returns all transactions, newest first.
func (s *Service) List() []Transaction {
	return s.col.Items()
}

// Expenses returns only expense transactions, newest first.
func (s *Service) Expenses() []Transaction {
	var out []Transaction

	for _, tx := range s.col.Items() {
		if tx.Type == TypeExpense {
			out = append(out, tx)
		}
	}

	return out
}

// Err reports the last storage failure, if any.
func (s *Service) Err() error {
	return s.col.Err()
}
