package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-portfolio/internal/domain/todo"
	"github.com/adanyl0v/go-portfolio/internal/models"
	"github.com/adanyl0v/go-portfolio/internal/storage"
)

type taskServiceImpl struct {
	logger  zerolog.Logger
	storage storage.Storage
	key     string
	newID   func() string
	now     func() time.Time

	mu     sync.Mutex
	loaded bool
	tasks  []models.Task
}

type TaskServiceOption func(*taskServiceImpl)

func WithTaskIDGenerator(newID func() string) TaskServiceOption {
	return func(s *taskServiceImpl) {
		s.newID = newID
	}
}

func WithTaskClock(now func() time.Time) TaskServiceOption {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Storage,
	key string,
	opts ...TaskServiceOption,
) TaskService {
	s := &taskServiceImpl{
		logger:  logger,
		storage: store,
		key:     key,
		newID:   uuid.NewString,
		now:     time.Now,
		tasks:   []models.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *taskServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

func (s *taskServiceImpl) loadLocked(ctx context.Context) error {
	value, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Str("key", s.key).
				Msg("no persisted tasks found")
			s.tasks = []models.Task{}
			s.loaded = true
			return nil
		}

		s.logger.Error().
			Err(err).
			Str("key", s.key).
			Msg("failed to read persisted tasks")
		s.loaded = false
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	var tasks []models.Task
	err = json.Unmarshal(value, &tasks)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", s.key).
			Msg("failed to parse persisted tasks")
		s.tasks = []models.Task{}
		s.loaded = true
		return nil
	}
	s.tasks = todo.Normalize(tasks)
	s.loaded = true

	s.logger.Info().
		Int("count", len(s.tasks)).
		Str("key", s.key).
		Msg("loaded tasks")
	return nil
}

// ensureLoadedLocked retries a failed load. Nothing is written until the
// persisted tasks have been read.
func (s *taskServiceImpl) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *taskServiceImpl) List(ctx context.Context, filter todo.ViewFilter) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoadedLocked(ctx)

	return copyTasks(todo.Filter(s.tasks, filter))
}

func (s *taskServiceImpl) Categories(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoadedLocked(ctx)

	return todo.Categories(s.tasks)
}

func (s *taskServiceImpl) Add(ctx context.Context, params AddTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Text) == "" {
		s.logger.Debug().Msg("rejected task with empty text")
		return nil, ErrEmptyTaskText
	}

	task := todo.NewTask(
		s.newID(),
		params.Text,
		params.Priority,
		params.Category,
		params.Tags,
		s.now().UTC(),
	)
	if !models.IsValidPriority(task.Priority) {
		s.logger.Debug().
			Str("priority", task.Priority).
			Msg("rejected task with invalid priority")
		return nil, ErrInvalidTaskPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return nil, err
	}

	err = s.applyLocked(ctx, todo.Add{Task: task})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("category", task.Category).
		Msg("added task")
	return copyTask(task), nil
}

func (s *taskServiceImpl) Toggle(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return nil, err
	}

	if todo.IndexOf(s.tasks, id) < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	err = s.applyLocked(ctx, todo.Toggle{ID: id})
	task := copyTask(s.tasks[todo.IndexOf(s.tasks, id)])
	if err != nil {
		return task, err
	}

	s.logger.Info().
		Str("task_id", id).
		Bool("completed", task.Completed).
		Msg("toggled task")
	return task, nil
}

func (s *taskServiceImpl) Edit(ctx context.Context, id, text string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return nil, err
	}

	i := todo.IndexOf(s.tasks, id)
	if i < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	if strings.TrimSpace(text) == "" {
		s.logger.Debug().
			Str("task_id", id).
			Msg("kept previous text of task")
		return copyTask(s.tasks[i]), ErrEmptyTaskText
	}

	err = s.applyLocked(ctx, todo.Edit{ID: id, Text: text})
	task := copyTask(s.tasks[todo.IndexOf(s.tasks, id)])
	if err != nil {
		return task, err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("edited task")
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return err
	}

	if todo.IndexOf(s.tasks, id) < 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	err = s.applyLocked(ctx, todo.Delete{ID: id})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return 0, err
	}

	before := len(s.tasks)
	err = s.applyLocked(ctx, todo.ClearCompleted{})
	removed := before - len(s.tasks)
	if err != nil {
		return removed, err
	}

	s.logger.Info().
		Int("count", removed).
		Msg("cleared completed tasks")
	return removed, nil
}

func (s *taskServiceImpl) ClearAll(ctx context.Context, confirmed bool) (int, error) {
	if !confirmed {
		s.logger.Debug().Msg("clear all not confirmed")
		return 0, ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return 0, err
	}

	before := len(s.tasks)
	err = s.applyLocked(ctx, todo.ClearAll{Confirmed: true})
	if err != nil {
		return before, err
	}

	s.logger.Info().
		Int("count", before).
		Msg("cleared all tasks")
	return before, nil
}

func (s *taskServiceImpl) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return err
	}
	return s.persistLocked(ctx)
}

// applyLocked swaps in the reduced collection and writes it through to
// storage. The new collection is kept even if the write fails.
func (s *taskServiceImpl) applyLocked(ctx context.Context, action todo.Action) error {
	next, changed := todo.Reduce(s.tasks, action)
	if !changed {
		return nil
	}
	s.tasks = next
	return s.persistLocked(ctx)
}

func (s *taskServiceImpl) persistLocked(ctx context.Context) error {
	value, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to marshal tasks")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	err = s.storage.Set(ctx, s.key, value)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", s.key).
			Msg("failed to write tasks")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	s.logger.Debug().
		Int("count", len(s.tasks)).
		Str("key", s.key).
		Msg("persisted tasks")
	return nil
}

func copyTask(task models.Task) *models.Task {
	task.Tags = append([]string{}, task.Tags...)
	return &task
}

func copyTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, task := range tasks {
		out[i] = *copyTask(task)
	}
	return out
}
