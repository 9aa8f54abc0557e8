package productivity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/storage"
	"github.com/hbarnes/penny/internal/store"
)

// Slot keys for the two collections.
const (
	TodosSlotKey     = "expenseTrackerTodos"
	RemindersSlotKey = "expenseTrackerReminders"
)

var ErrMissingDescription = errors.New("description is required")

// Service owns the to-do and reminder collections, both ordered oldest
// first by creation time.
type Service struct {
	todos     *store.Collection[ToDoItem]
	reminders *store.Collection[ReminderItem]
	now       func() time.Time
}

func NewService(slot storage.Slot) *Service {
	return &Service{
		todos: store.New(slot, TodosSlotKey, func(a, b ToDoItem) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}),
		reminders: store.New(slot, RemindersSlotKey, func(a, b ReminderItem) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}),
		now: time.Now,
	}
}

// Load reads both collections. Corrupt or unreadable slots reset to
// empty; startup continues regardless.
func (s *Service) Load(ctx context.Context) {
	s.todos.Load(ctx)
	s.reminders.Load(ctx)
}

func (s *Service) AddTodo(ctx context.Context, description string, date time.Time) (ToDoItem, error) {
	if description == "" {
		return ToDoItem{}, ErrMissingDescription
	}

	todo := ToDoItem{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Completed:   false,
		CreatedAt:   s.now(),
	}

	if err := s.todos.Add(ctx, todo); err != nil {
		return ToDoItem{}, err
	}

	return todo, nil
}

// ToggleTodo flips the completed flag. Unknown ids are a silent no-op.
func (s *Service) ToggleTodo(ctx context.Context, id uuid.UUID) error {
	return s.todos.Update(ctx, id, func(t ToDoItem) ToDoItem {
		t.Completed = !t.Completed
		return t
	})
}

func (s *Service) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return s.todos.Remove(ctx, id)
}

func (s *Service) Todos() []ToDoItem {
	return s.todos.Items()
}

func (s *Service) AddReminder(ctx context.Context, description string, date time.Time) (ReminderItem, error) {
	if description == "" {
		return ReminderItem{}, ErrMissingDescription
	}

	reminder := ReminderItem{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		CreatedAt:   s.now(),
	}

	if err := s.reminders.Add(ctx, reminder); err != nil {
		return ReminderItem{}, err
	}

	return reminder, nil
}

func (s *Service) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	return s.reminders.Remove(ctx, id)
}

func (s *Service) Reminders() []ReminderItem {
	return s.reminders.Items()
}

// Err reports the first recorded storage failure across the two
// collections, if any.
func (s *Service) Err() error {
	if err := s.todos.Err(); err != nil {
		return err
	}

	return s.reminders.Err()
}
