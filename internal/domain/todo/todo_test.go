package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

func sampleState() []models.Task {
	return []models.Task{
		{ID: "3", Text: "Write report", Category: "Work", Tags: []string{"Urgent"}},
		{ID: "2", Text: "Buy milk", Category: "Home", Tags: []string{"shopping"}, Completed: true},
		{ID: "1", Text: "Call mom", Category: "Home", Tags: []string{}},
	}
}

func ids(state []models.Task) []string {
	out := make([]string, len(state))
	for i, task := range state {
		out[i] = task.ID
	}
	return out
}

func TestReduce_AddInsertsAtFront(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Add{Task: models.Task{ID: "4", Text: "New"}})

	assert.True(t, changed)
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(next))
	assert.Len(t, state, 3)
}

func TestReduce_AddBlankIsNoop(t *testing.T) {
	state := sampleState()

	for _, text := range []string{"", "   ", "\t\n"} {
		next, changed := Reduce(state, Add{Task: models.Task{ID: "4", Text: text}})
		assert.False(t, changed)
		assert.Equal(t, state, next)
	}
}

func TestReduce_ToggleFlipsOnlyMatchingRecord(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Toggle{ID: "3"})

	require.True(t, changed)
	assert.True(t, next[0].Completed)
	assert.True(t, next[1].Completed)
	assert.False(t, next[2].Completed)
	assert.False(t, state[0].Completed, "input must not be mutated")
}

func TestReduce_ToggleUnknownIsNoop(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Toggle{ID: "missing"})

	assert.False(t, changed)
	assert.Equal(t, sampleState(), next)
}

func TestReduce_EditBlankKeepsPreviousText(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Edit{ID: "2", Text: "  "})

	assert.False(t, changed)
	assert.Equal(t, "Buy milk", next[1].Text)
}

func TestReduce_EditTrimsText(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Edit{ID: "2", Text: "  Buy oat milk "})

	require.True(t, changed)
	assert.Equal(t, "Buy oat milk", next[1].Text)
	assert.Equal(t, []string{"3", "2", "1"}, ids(next))
	assert.Equal(t, "Buy milk", state[1].Text)
}

func TestReduce_Delete(t *testing.T) {
	state := sampleState()

	next, changed := Reduce(state, Delete{ID: "2"})
	assert.True(t, changed)
	assert.Equal(t, []string{"3", "1"}, ids(next))

	next, changed = Reduce(next, Delete{ID: "2"})
	assert.False(t, changed)
	assert.Equal(t, []string{"3", "1"}, ids(next))
}

func TestReduce_ClearCompletedRemovesExactlyCompleted(t *testing.T) {
	state := sampleState()
	state[2].Completed = true

	next, changed := Reduce(state, ClearCompleted{})

	assert.True(t, changed)
	assert.Equal(t, []string{"3"}, ids(next))
}

func TestReduce_ClearAllRequiresConfirmation(t *testing.T) {
	state := []models.Task{{ID: "1", Text: "Buy milk"}}

	next, changed := Reduce(state, ClearAll{})
	assert.False(t, changed)
	assert.Len(t, next, 1)

	next, changed = Reduce(state, ClearAll{Confirmed: true})
	assert.True(t, changed)
	assert.Empty(t, next)
	assert.NotNil(t, next)
}

func TestNewTask_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	task := NewTask("id-1", "  Buy milk ", "", "  ", []string{" a", "", "b "}, now)

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Buy milk", task.Text)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.DefaultCategory, task.Category)
	assert.Equal(t, []string{"a", "b"}, task.Tags)
	assert.False(t, task.Completed)
	assert.Equal(t, now, task.CreatedAt)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "q3", "deep focus"}, ParseTags("work, q3,, deep focus ,"))
	assert.Empty(t, ParseTags(""))
}

func TestNormalize(t *testing.T) {
	assert.NotNil(t, Normalize(nil))

	state := Normalize([]models.Task{{ID: "1", Text: "x"}})
	assert.Equal(t, models.DefaultCategory, state[0].Category)
	assert.NotNil(t, state[0].Tags)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Work", "Home"}, Categories(sampleState()))
}
