package insight

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/insight"
)

type Handler struct {
	svc *insight.Service
}

func NewHandler(svc *insight.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
}

type insightResponse struct {
	SavingsTips string `json:"savings_tips"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	tips, err := h.svc.GenerateTips(r.Context())
	if err != nil {
		if errors.Is(err, insight.ErrNoExpenses) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("insight request failed", "error", err)
		http.Error(w, "failed to generate suggestions, please try again", http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(insightResponse{SavingsTips: tips}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
