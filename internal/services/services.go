package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-portfolio/internal/domain/catalog"
	"github.com/adanyl0v/go-portfolio/internal/domain/todo"
	"github.com/adanyl0v/go-portfolio/internal/models"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrEmptyTaskText        = errors.New("task text must not be empty")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrPersistFailed        = errors.New("failed to persist tasks")
	ErrLoadFailed           = errors.New("failed to load tasks")
	ErrProjectNotFound      = errors.New("project not found")
)

type TaskService interface {
	// Load replaces the in-memory collection with the persisted one.
	//
	// A missing or unparsable value results in an empty collection.
	// A storage read failure returns ErrLoadFailed and leaves the store
	// unloaded: mutations retry the load and refuse to write until it
	// succeeds.
	Load(ctx context.Context) error

	// List returns the tasks visible under the given filter,
	// newest first.
	List(ctx context.Context, filter todo.ViewFilter) []models.Task

	// Categories returns the distinct categories of all tasks.
	Categories(ctx context.Context) []string

	// Add inserts a new task at the front of the collection.
	//
	// It returns ErrEmptyTaskText if the trimmed text is empty or
	// ErrInvalidTaskPriority if the priority is unknown.
	Add(ctx context.Context, params AddTaskParams) (*models.Task, error)

	// Toggle flips the completion flag of the task.
	//
	// It returns ErrTaskNotFound if there is no task with the given ID.
	Toggle(ctx context.Context, id string) (*models.Task, error)

	// Edit replaces the text of the task.
	//
	// It returns the unchanged task and ErrEmptyTaskText if the
	// trimmed text is empty, or ErrTaskNotFound.
	Edit(ctx context.Context, id, text string) (*models.Task, error)

	// Delete removes the task.
	//
	// It returns ErrTaskNotFound if there is no task with the given ID.
	Delete(ctx context.Context, id string) error

	// ClearCompleted removes every completed task and returns
	// how many were removed.
	ClearCompleted(ctx context.Context) (int, error)

	// ClearAll removes every task. It does nothing and returns
	// ErrConfirmationRequired unless confirmed is set.
	ClearAll(ctx context.Context, confirmed bool) (int, error)

	// Persist writes the whole collection to storage.
	Persist(ctx context.Context) error
}

type ProductService interface {
	// Products returns the catalog, loading it on first use.
	Products(ctx context.Context) []models.Product

	// Reload fetches the catalog again. A failed fetch falls back to
	// the built-in sample set.
	Reload(ctx context.Context) []models.Product

	Search(ctx context.Context, query catalog.Query) []models.Product
	Categories(ctx context.Context) []string
}

type ContactService interface {
	// Submit validates msg and relays it to the configured endpoint.
	//
	// It returns a *contact.ValidationError if msg is invalid. Delivery
	// problems are reported through the outcome, never as an error.
	Submit(ctx context.Context, msg models.ContactMessage) (*ContactResult, error)
}

type ProjectService interface {
	List(ctx context.Context) []models.Project

	// Get returns ErrProjectNotFound for an unknown ID.
	Get(ctx context.Context, id string) (*models.Project, error)
}

type AddTaskParams struct {
	Text     string
	Priority string
	Category string
	Tags     []string
}

const (
	ContactOutcomeDelivered = "delivered"
	ContactOutcomeDemo      = "demo"
	ContactOutcomeLocal     = "local"
)

type ContactResult struct {
	Outcome    string
	Message    string
	StatusCode int
}
