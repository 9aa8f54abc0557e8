package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/aggregate"
	"github.com/hbarnes/penny/internal/budget"
	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/currency"
	"github.com/hbarnes/penny/internal/transaction"
)

type Handler struct {
	txSvc    *transaction.Service
	registry *budget.Registry
	curSvc   *currency.Service
}

func NewHandler(txSvc *transaction.Service, registry *budget.Registry, curSvc *currency.Service) *Handler {
	return &Handler{txSvc: txSvc, registry: registry, curSvc: curSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
	r.Get("/daily", h.daily)
}

type categoryTotal struct {
	Category category.Category `json:"category"`
	Total    float64           `json:"total"`
}

type overviewResponse struct {
	TotalIncome     float64          `json:"total_income"`
	TotalExpenses   float64          `json:"total_expenses"`
	Balance         float64          `json:"balance"`
	ByCategory      []categoryTotal  `json:"by_category"`
	BudgetStatus    aggregate.Status `json:"budget_status"`
	Currency        currency.Code    `json:"currency"`
	FormattedIncome string           `json:"formatted_income"`
	FormattedSpend  string           `json:"formatted_expenses"`
}

func (h *Handler) overview(w http.ResponseWriter, _ *http.Request) {
	txs := h.txSvc.List()

	income := aggregate.TotalIncome(txs)
	expenses := aggregate.TotalExpenses(txs)
	totals := aggregate.CategoryTotals(txs)

	// Emit categories in catalog order so charts render stably.
	byCategory := []categoryTotal{}

	for _, c := range category.All {
		if total, ok := totals[c]; ok {
			byCategory = append(byCategory, categoryTotal{Category: c, Total: total})
		}
	}

	resp := overviewResponse{
		TotalIncome:     income,
		TotalExpenses:   expenses,
		Balance:         income - expenses,
		ByCategory:      byCategory,
		BudgetStatus:    aggregate.OverallStatus(h.registry.List(), txs),
		Currency:        h.curSvc.Selected().Code,
		FormattedIncome: h.curSvc.Format(income),
		FormattedSpend:  h.curSvc.Format(expenses),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dailyResponse struct {
	Date         string                    `json:"date"`
	Income       float64                   `json:"income"`
	Expenses     float64                   `json:"expenses"`
	Transactions []transaction.Transaction `json:"transactions"`
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		http.Error(w, "date query parameter is required", http.StatusBadRequest)
		return
	}

	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	matched, summary := aggregate.ForDay(h.txSvc.List(), day)
	if matched == nil {
		matched = []transaction.Transaction{}
	}

	resp := dailyResponse{
		Date:         raw,
		Income:       summary.Income,
		Expenses:     summary.Expenses,
		Transactions: matched,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
