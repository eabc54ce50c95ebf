package todo

import (
	"strings"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

const CategoryAll = "all"

type ViewFilter struct {
	Category string
	Tag      string
}

// Filter returns the tasks visible under f, preserving collection order.
func Filter(state []models.Task, f ViewFilter) []models.Task {
	category := f.Category
	if category == "" {
		category = CategoryAll
	}
	tag := strings.ToLower(strings.TrimSpace(f.Tag))

	out := make([]models.Task, 0, len(state))
	for _, task := range state {
		if category != CategoryAll && task.Category != category {
			continue
		}
		if tag != "" && !hasTag(task, tag) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func hasTag(task models.Task, lowered string) bool {
	for _, t := range task.Tags {
		if strings.ToLower(t) == lowered {
			return true
		}
	}
	return false
}
