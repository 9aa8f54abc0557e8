package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/aggregate"
	"github.com/hbarnes/penny/internal/budget"
	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/transaction"
)

type Handler struct {
	registry *budget.Registry
	txSvc    *transaction.Service
}

func NewHandler(registry *budget.Registry, txSvc *transaction.Service) *Handler {
	return &Handler{registry: registry, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/available", h.availableCategories)
	r.Patch("/{category}", h.edit)
	r.Delete("/{category}", h.delete)
}

type budgetResponse struct {
	Category        category.Category `json:"category"`
	Limit           float64           `json:"limit"`
	Spent           float64           `json:"spent"`
	Remaining       float64           `json:"remaining"`
	IsOverBudget    bool              `json:"is_over_budget"`
	ProgressPercent float64           `json:"progress_percent"`
}

func toResponse(p aggregate.Progress) budgetResponse {
	return budgetResponse{
		Category:        p.Budget.Category,
		Limit:           p.Budget.Limit,
		Spent:           p.Spent,
		Remaining:       p.Remaining,
		IsOverBudget:    p.IsOverBudget,
		ProgressPercent: p.ProgressPercent,
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	txs := h.txSvc.List()

	budgets := h.registry.List()
	resp := make([]budgetResponse, len(budgets))

	for i, b := range budgets {
		resp[i] = toResponse(aggregate.BudgetProgress(b, txs))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createBudgetRequest struct {
	Category category.Category `json:"category"`
	Limit    float64           `json:"limit"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.registry.Add(r.Context(), req.Category, req.Limit)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(aggregate.BudgetProgress(b, h.txSvc.List()))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type editBudgetRequest struct {
	Limit float64 `json:"limit"`
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	cat := category.Category(chi.URLParam(r, "category"))

	var req editBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.registry.Edit(r.Context(), cat, req.Limit)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(aggregate.BudgetProgress(b, h.txSvc.List()))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	cat := category.Category(chi.URLParam(r, "category"))

	if err := h.registry.Delete(r.Context(), cat); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) availableCategories(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.registry.AvailableCategories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, budget.ErrAlreadyBudgeted) ||
		errors.Is(err, budget.ErrInvalidLimit) ||
		errors.Is(err, budget.ErrIncomeCategory) ||
		errors.Is(err, budget.ErrInvalidCategory)
}
