// Package todo holds the pure state transitions of the task list.
//
// Every function takes the current collection and returns a new one;
// the input slice is never modified, so callers can keep the previous
// state around until the new one has been persisted.
package todo

import (
	"strings"
	"time"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

type Action interface {
	isAction()
}

type Add struct {
	Task models.Task
}

type Toggle struct {
	ID string
}

type Edit struct {
	ID   string
	Text string
}

type Delete struct {
	ID string
}

type ClearCompleted struct{}

type ClearAll struct {
	Confirmed bool
}

func (Add) isAction()            {}
func (Toggle) isAction()         {}
func (Edit) isAction()           {}
func (Delete) isAction()         {}
func (ClearCompleted) isAction() {}
func (ClearAll) isAction()       {}

// Reduce applies action to state and reports whether the collection
// changed. Actions that would break a record invariant (blank text,
// unknown id, unconfirmed clear) return state unchanged.
func Reduce(state []models.Task, action Action) ([]models.Task, bool) {
	switch a := action.(type) {
	case Add:
		if strings.TrimSpace(a.Task.Text) == "" {
			return state, false
		}
		next := make([]models.Task, 0, len(state)+1)
		next = append(next, a.Task)
		return append(next, state...), true

	case Toggle:
		i := IndexOf(state, a.ID)
		if i < 0 {
			return state, false
		}
		next := clone(state)
		next[i].Completed = !next[i].Completed
		return next, true

	case Edit:
		i := IndexOf(state, a.ID)
		text := strings.TrimSpace(a.Text)
		if i < 0 || text == "" {
			return state, false
		}
		if state[i].Text == text {
			return state, false
		}
		next := clone(state)
		next[i].Text = text
		return next, true

	case Delete:
		i := IndexOf(state, a.ID)
		if i < 0 {
			return state, false
		}
		next := make([]models.Task, 0, len(state)-1)
		next = append(next, state[:i]...)
		return append(next, state[i+1:]...), true

	case ClearCompleted:
		next := make([]models.Task, 0, len(state))
		for _, task := range state {
			if !task.Completed {
				next = append(next, task)
			}
		}
		return next, len(next) != len(state)

	case ClearAll:
		if !a.Confirmed || len(state) == 0 {
			return state, false
		}
		return []models.Task{}, true
	}

	return state, false
}

func IndexOf(state []models.Task, id string) int {
	for i := range state {
		if state[i].ID == id {
			return i
		}
	}
	return -1
}

// NewTask builds a record from raw form input. The text is trimmed,
// the category defaults to models.DefaultCategory and the priority to
// models.PriorityMedium.
func NewTask(id, text, priority, category string, tags []string, now time.Time) models.Task {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.DefaultCategory
	}
	priority = strings.ToLower(strings.TrimSpace(priority))
	if priority == "" {
		priority = models.PriorityMedium
	}

	return models.Task{
		ID:        id,
		Text:      strings.TrimSpace(text),
		Priority:  priority,
		Category:  category,
		Tags:      CleanTags(tags),
		Completed: false,
		CreatedAt: now,
	}
}

// ParseTags splits a comma separated list of tags.
func ParseTags(csv string) []string {
	return CleanTags(strings.Split(csv, ","))
}

// CleanTags trims every tag and drops the empty ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Normalize repairs records read back from storage.
func Normalize(state []models.Task) []models.Task {
	if state == nil {
		return []models.Task{}
	}
	for i := range state {
		if strings.TrimSpace(state[i].Category) == "" {
			state[i].Category = models.DefaultCategory
		}
		if state[i].Tags == nil {
			state[i].Tags = []string{}
		}
	}
	return state
}

// Categories returns the distinct non-empty categories in collection order.
func Categories(state []models.Task) []string {
	seen := make(map[string]struct{}, len(state))
	out := make([]string, 0)
	for _, task := range state {
		if task.Category == "" {
			continue
		}
		if _, ok := seen[task.Category]; ok {
			continue
		}
		seen[task.Category] = struct{}{}
		out = append(out, task.Category)
	}
	return out
}

func clone(state []models.Task) []models.Task {
	next := make([]models.Task, len(state))
	copy(next, state)
	return next
}
