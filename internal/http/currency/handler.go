package currency

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/currency"
)

type Handler struct {
	svc *currency.Service
}

func NewHandler(svc *currency.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
}

type currencyResponse struct {
	Selected  currency.Currency   `json:"selected"`
	Supported []currency.Currency `json:"supported"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	resp := currencyResponse{
		Selected:  h.svc.Selected(),
		Supported: currency.Supported,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setCurrencyRequest struct {
	Code currency.Code `json:"code"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetCode(r.Context(), req.Code); err != nil {
		if errors.Is(err, currency.ErrUnsupported) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Selected()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
