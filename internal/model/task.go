package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Subtask struct {
	ID       string
	Name     string
	Complete bool
}

type Task struct {
	ID         string
	Name       string
	TagID      string
	Date       time.Time
	Complete   bool
	Order      int
	Subtasks   []Subtask
	AssigneeID string
	CreatedAt  time.Time
}

// NewID returns a collision-free identifier for tasks, subtasks, and tags.
func NewID() string {
	return uuid.NewString()
}

// Day truncates an instant to its calendar date in UTC. Tasks belong to
// exactly one day, so every Date stored on a Task goes through this first.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if t.Date.IsZero() {
		return errors.New("model: task date is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	for _, sub := range t.Subtasks {
		if strings.TrimSpace(sub.ID) == "" {
			return errors.New("model: subtask id is required")
		}
	}
	return nil
}

// Clone returns a deep copy so callers can hand tasks out of the store
// without sharing the subtask slice.
func (t Task) Clone() Task {
	out := t
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(out.Subtasks, t.Subtasks)
	}
	return out
}
