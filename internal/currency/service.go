package currency

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hbarnes/penny/internal/storage"
)

// SlotKey is the durable slot holding the selected currency code. The
// stored value is the raw code string, not JSON.
const SlotKey = "expenseTrackerSelectedCurrency"

var ErrUnsupported = errors.New("unsupported currency code")

// Service tracks the one process-wide selected currency.
type Service struct {
	slot storage.Slot

	mu       sync.RWMutex
	selected Currency
}

func NewService(slot storage.Slot) *Service {
	def, _ := ByCode(DefaultCode)

	return &Service{slot: slot, selected: def}
}

// Load restores the persisted selection. A missing, unreadable or
// unknown stored code quietly falls back to the default.
func (s *Service) Load(ctx context.Context) {
	data, err := s.slot.Read(ctx, SlotKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("failed to load selected currency", "error", err)
		}

		return
	}

	if c, ok := ByCode(Code(data)); ok {
		s.mu.Lock()
		s.selected = c
		s.mu.Unlock()
	}
}

// SetCode selects a currency from the catalog and persists the choice.
func (s *Service) SetCode(ctx context.Context, code Code) error {
	c, ok := ByCode(code)
	if !ok {
		return ErrUnsupported
	}

	s.mu.Lock()
	s.selected = c
	s.mu.Unlock()

	if err := s.slot.Write(ctx, SlotKey, []byte(code)); err != nil {
		// The in-memory selection still applies; it just won't survive
		// a restart.
		slog.Error("failed to persist selected currency", "error", err)
		return err
	}

	return nil
}

// Selected returns the current display currency.
func (s *Service) Selected() Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected
}

// Format renders the amount in the selected currency.
func (s *Service) Format(amount float64) string {
	return Format(s.Selected(), amount)
}
