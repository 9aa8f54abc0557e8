// Package productivity holds the calendar companions to the ledger:
// per-day to-dos and reminders.
package productivity

import (
	"time"

	"github.com/google/uuid"
)

// ToDoItem is a day-scoped task. Only the completed flag mutates after
// creation.
type ToDoItem struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t ToDoItem) EntityID() uuid.UUID { return t.ID }

// ReminderItem is a day-scoped note. Created and deleted, never mutated.
type ReminderItem struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r ReminderItem) EntityID() uuid.UUID { return r.ID }
