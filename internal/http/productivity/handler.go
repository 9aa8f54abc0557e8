package productivity

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/aggregate"
	"github.com/hbarnes/penny/internal/productivity"
)

type Handler struct {
	svc *productivity.Service
}

func NewHandler(svc *productivity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) TodoRoutes(r chi.Router) {
	r.Post("/", h.createTodo)
	r.Get("/", h.listTodos)
	r.Patch("/{id}/toggle", h.toggleTodo)
	r.Delete("/{id}", h.deleteTodo)
}

func (h *Handler) ReminderRoutes(r chi.Router) {
	r.Post("/", h.createReminder)
	r.Get("/", h.listReminders)
	r.Delete("/{id}", h.deleteReminder)
}

type createItemRequest struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type todoResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type reminderResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTodoResponse(t productivity.ToDoItem) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func toReminderResponse(r productivity.ReminderItem) reminderResponse {
	return reminderResponse{
		ID:          r.ID,
		Date:        r.Date,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// dayFilter parses an optional ?date=YYYY-MM-DD query parameter.
func dayFilter(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, nil
	}

	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	todo, err := h.svc.AddTodo(r.Context(), req.Description, req.Date)
	if err != nil {
		if errors.Is(err, productivity.ErrMissingDescription) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTodoResponse(todo)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	day, err := dayFilter(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	resp := []todoResponse{}

	for _, t := range h.svc.Todos() {
		if day != nil && !aggregate.SameDay(t.Date, *day) {
			continue
		}

		resp = append(resp, toTodoResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.ToggleTodo(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createReminder(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reminder, err := h.svc.AddReminder(r.Context(), req.Description, req.Date)
	if err != nil {
		if errors.Is(err, productivity.ErrMissingDescription) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toReminderResponse(reminder)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	day, err := dayFilter(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	resp := []reminderResponse{}

	for _, item := range h.svc.Reminders() {
		if day != nil && !aggregate.SameDay(item.Date, *day) {
			continue
		}

		resp = append(resp, toReminderResponse(item))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteReminder(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
