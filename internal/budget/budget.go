// Package budget manages per-category spending limits. The spent amount
// is never stored here; it is always derived from the transaction list.
package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/storage"
)

// SlotKey is the durable slot holding the budget registry.
const SlotKey = "expenseTrackerBudgets"

var (
	ErrAlreadyBudgeted = errors.New("category already has a budget")
	ErrInvalidLimit    = errors.New("limit must be greater than zero")
	ErrIncomeCategory  = errors.New("the Income category cannot be budgeted")
	ErrInvalidCategory = errors.New("unknown category")
	ErrNotFound        = errors.New("budget not found")
)

// Budget pairs a category with its monthly limit. At most one Budget
// exists per category.
type Budget struct {
	Category category.Category `json:"category"`
	Limit    float64           `json:"limit"`
}

// Registry holds the budget list, persisted to its own slot. Insertion
// order is preserved.
type Registry struct {
	slot storage.Slot

	mu      sync.Mutex
	budgets []Budget
	err     error
}

func NewRegistry(slot storage.Slot) *Registry {
	return &Registry{slot: slot}
}

// Load reads the registry from its slot. Missing or corrupt data starts
// the registry empty; corruption is recorded on Err, not fatal.
func (r *Registry) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = nil
	r.budgets = nil

	data, err := r.slot.Read(ctx, SlotKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return
		}

		slog.Error("failed to load budgets", "error", err)
		r.err = fmt.Errorf("loading budgets: %w", err)

		return
	}

	var budgets []Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		slog.Error("corrupt budget data, resetting", "error", err)
		r.err = fmt.Errorf("decoding budgets: %w", err)

		return
	}

	r.budgets = budgets
}

func validate(cat category.Category, limit float64) error {
	if !category.Valid(cat) {
		return ErrInvalidCategory
	}

	if cat == category.Income {
		return ErrIncomeCategory
	}

	if limit <= 0 {
		return ErrInvalidLimit
	}

	return nil
}

// Add registers a new budget. Already-budgeted categories, the Income
// category and non-positive limits are rejected.
func (r *Registry) Add(ctx context.Context, cat category.Category, limit float64) (Budget, error) {
	if err := validate(cat, limit); err != nil {
		return Budget{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(cat) >= 0 {
		return Budget{}, ErrAlreadyBudgeted
	}

	b := Budget{Category: cat, Limit: limit}

	prev := r.budgets
	r.budgets = append(append([]Budget{}, prev...), b)

	if err := r.persist(ctx); err != nil {
		r.budgets = prev
		return Budget{}, err
	}

	return b, nil
}

// Edit replaces the limit of an existing budget.
func (r *Registry) Edit(ctx context.Context, cat category.Category, newLimit float64) (Budget, error) {
	if err := validate(cat, newLimit); err != nil {
		return Budget{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(cat)
	if idx < 0 {
		return Budget{}, ErrNotFound
	}

	prev := r.budgets[idx]
	r.budgets[idx].Limit = newLimit

	if err := r.persist(ctx); err != nil {
		r.budgets[idx] = prev
		return Budget{}, err
	}

	return r.budgets[idx], nil
}

// Delete removes the budget for the category, if any.
func (r *Registry) Delete(ctx context.Context, cat category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(cat)
	if idx < 0 {
		return nil
	}

	prev := r.budgets
	next := make([]Budget, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	r.budgets = next

	if err := r.persist(ctx); err != nil {
		r.budgets = prev
		return err
	}

	return nil
}

// List returns the registered budgets in insertion order.
func (r *Registry) List() []Budget {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Budget, len(r.budgets))
	copy(out, r.budgets)

	return out
}

// AvailableCategories returns every category that can still be
// budgeted: all except Income and those already registered.
func (r *Registry) AvailableCategories() []category.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []category.Category

	for _, c := range category.All {
		if c == category.Income {
			continue
		}

		if r.indexOf(c) >= 0 {
			continue
		}

		out = append(out, c)
	}

	return out
}

// Err reports the last storage failure, if any.
func (r *Registry) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *Registry) indexOf(cat category.Category) int {
	for i, b := range r.budgets {
		if b.Category == cat {
			return i
		}
	}

	return -1
}

func (r *Registry) persist(ctx context.Context) error {
	budgets := r.budgets
	if budgets == nil {
		budgets = []Budget{}
	}

	data, err := json.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("encoding budgets: %w", err)
	}

	if err := r.slot.Write(ctx, SlotKey, data); err != nil {
		slog.Error("failed to persist budgets", "error", err)
		r.err = fmt.Errorf("persisting budgets: %w", err)

		return r.err
	}

	r.err = nil

	return nil
}
