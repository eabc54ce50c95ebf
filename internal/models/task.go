package models

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const DefaultCategory = "General"

// Task is a single to-do entry. The json tags define the persisted
// representation stored under the task list key.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func IsValidPriority(priority string) bool {
	return priority == PriorityLow ||
		priority == PriorityMedium ||
		priority == PriorityHigh
}
