package export

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/export"
	"github.com/hbarnes/penny/internal/transaction"
)

type Handler struct {
	txSvc *transaction.Service
}

func NewHandler(txSvc *transaction.Service) *Handler {
	return &Handler{txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := export.WriteCSV(w, h.txSvc.List()); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}
