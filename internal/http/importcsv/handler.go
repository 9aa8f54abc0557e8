package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbarnes/penny/internal/importer"
	"github.com/hbarnes/penny/internal/transaction"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	txSvc *transaction.Service
}

func NewHandler(txSvc *transaction.Service) *Handler {
	return &Handler{txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := importer.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0

	// Rows were fully validated by Parse, so a failure here is a
	// storage problem, not a bad upload.
	for _, p := range params {
		if _, err := h.txSvc.Add(r.Context(), p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: imported}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
