package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/adanyl0v/go-portfolio/internal/services"
	"github.com/adanyl0v/go-portfolio/internal/storage"
)

type testEnv struct {
	router  *gin.Engine
	storage *storage.MemoryStorage
}

func newTestEnv(t *testing.T, contactEndpoint string, burst int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	store := storage.NewMemoryStorage()
	taskService := services.NewTaskService(logger, store, "my_todos_v2")
	require.NoError(t, taskService.Load(context.Background()))

	h := New(
		logger,
		taskService,
		services.NewProductService(logger, nil, ""),
		services.NewContactService(logger, nil, contactEndpoint),
		services.NewProjectService(logger),
		rate.Limit(0.001),
		burst,
	)

	router := gin.New()
	router.Use(h.HandleRequestIDMiddleware, h.HandleLoggerMiddleware)
	RegisterRoutes(router, h)

	return &testEnv{router: router, storage: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (e *testEnv) createTask(t *testing.T, body gin.H) getTaskResponse {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[getTaskResponse](t, w)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "", 1)

	w := env.do(t, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	env := newTestEnv(t, "", 1)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestTasks_WireFieldNames(t *testing.T) {
	env := newTestEnv(t, "", 1)
	env.createTask(t, gin.H{"text": "Buy milk"})

	w := env.do(t, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Contains(t, tasks[0], "createdAt")
	assert.NotContains(t, tasks[0], "created_at")

	value, err := env.storage.Get(context.Background(), "my_todos_v2")
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(value, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, tasks[0]["createdAt"], stored[0]["createdAt"])
}

type unreadableStorage struct {
	*storage.MemoryStorage
}

func (s unreadableStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestTasks_UnreadableStorageIsUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	store := unreadableStorage{MemoryStorage: storage.NewMemoryStorage()}
	taskService := services.NewTaskService(logger, store, "my_todos_v2")
	require.ErrorIs(t, taskService.Load(context.Background()), services.ErrLoadFailed)

	h := New(
		logger,
		taskService,
		services.NewProductService(logger, nil, ""),
		services.NewContactService(logger, nil, ""),
		services.NewProjectService(logger),
		rate.Limit(0.001),
		1,
	)
	router := gin.New()
	RegisterRoutes(router, h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(`{"text":"Buy milk"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	_, err := store.MemoryStorage.Get(context.Background(), "my_todos_v2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTasks_CreateAndList(t *testing.T) {
	env := newTestEnv(t, "", 1)

	first := env.createTask(t, gin.H{"text": "Buy milk", "category": "Home", "tags_csv": "errand, food"})
	assert.Equal(t, "Buy milk", first.Text)
	assert.Equal(t, "medium", first.Priority)
	assert.Equal(t, []string{"errand", "food"}, first.Tags)

	second := env.createTask(t, gin.H{"text": "Write report", "priority": "high", "tags": []string{"Q3"}})
	assert.Equal(t, "General", second.Category)

	w := env.do(t, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode[[]getTaskResponse](t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	w = env.do(t, http.MethodGet, "/api/v1/tasks?category=Home", nil)
	tasks = decode[[]getTaskResponse](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, first.ID, tasks[0].ID)

	w = env.do(t, http.MethodGet, "/api/v1/tasks?tag=q3", nil)
	tasks = decode[[]getTaskResponse](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, second.ID, tasks[0].ID)

	w = env.do(t, http.MethodGet, "/api/v1/tasks/categories", nil)
	categories := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"General", "Home"}, categories["categories"])

	_, err := env.storage.Get(context.Background(), "my_todos_v2")
	assert.NoError(t, err)
}

func TestTasks_ListEmptyIsArray(t *testing.T) {
	env := newTestEnv(t, "", 1)

	w := env.do(t, http.MethodGet, "/api/v1/tasks", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTasks_CreateRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, "", 1)

	tests := []struct {
		name string
		body gin.H
	}{
		{name: "missing text", body: gin.H{}},
		{name: "blank text", body: gin.H{"text": "   "}},
		{name: "bad priority", body: gin.H{"text": "x", "priority": "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := env.do(t, http.MethodGet, "/api/v1/tasks", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTasks_ToggleEditDelete(t *testing.T) {
	env := newTestEnv(t, "", 1)
	task := env.createTask(t, gin.H{"text": "Buy milk"})
	path := "/api/v1/tasks/" + task.ID

	w := env.do(t, http.MethodPatch, path+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[getTaskResponse](t, w).Completed)

	w = env.do(t, http.MethodPatch, "/api/v1/tasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPatch, path, gin.H{"text": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	restored := decode[struct {
		Task getTaskResponse `json:"task"`
	}](t, w)
	assert.Equal(t, "Buy milk", restored.Task.Text)

	w = env.do(t, http.MethodPatch, path, gin.H{"text": "Buy oat milk"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Buy oat milk", decode[getTaskResponse](t, w).Text)

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasks_ClearCompletedAndAll(t *testing.T) {
	env := newTestEnv(t, "", 1)
	done := env.createTask(t, gin.H{"text": "done"})
	env.createTask(t, gin.H{"text": "open"})
	env.do(t, http.MethodPatch, "/api/v1/tasks/"+done.ID+"/toggle", nil)

	w := env.do(t, http.MethodPost, "/api/v1/tasks/clear-completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":1}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/v1/tasks/clear-all", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/tasks/clear-all?confirm=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/tasks/clear-all?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":1}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/tasks", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t, "", 1)

	w := env.do(t, http.MethodGet, "/api/v1/products?q=shoe&min_price=20&max_price=120", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[getProductsResponse](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Running Shoes", resp.Products[0].Title)

	w = env.do(t, http.MethodGet, "/api/v1/products?sort=price-desc", nil)
	resp = decode[getProductsResponse](t, w)
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, "Running Shoes", resp.Products[0].Title)

	w = env.do(t, http.MethodGet, "/api/v1/products?sort=name", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, query := range []string{"min_price=abc", "min_price=NaN", "max_price=Inf", "min_price=-Infinity"} {
		w = env.do(t, http.MethodGet, "/api/v1/products?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	w = env.do(t, http.MethodGet, "/api/v1/products/categories", nil)
	categories := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"all", "Home", "Electronics", "Fitness"}, categories["categories"])

	w = env.do(t, http.MethodPost, "/api/v1/products/reload", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t, "", 1)

	w := env.do(t, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]getProjectResponse](t, w), 3)

	w = env.do(t, http.MethodGet, "/api/v1/projects/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Personal Portfolio", decode[getProjectResponse](t, w).Title)

	w = env.do(t, http.MethodGet, "/api/v1/projects/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContact(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer collector.Close()

	env := newTestEnv(t, collector.URL, 5)

	w := env.do(t, http.MethodPost, "/api/v1/contact", gin.H{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Let's build something.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, services.ContactOutcomeDelivered, decode[map[string]string](t, w)["outcome"])

	form := url.Values{"name": {"A"}, "email": {"nope"}, "message": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[struct {
		Problems []string `json:"problems"`
	}](t, rec)
	assert.Len(t, body.Problems, 3)
}

func TestContact_RateLimited(t *testing.T) {
	env := newTestEnv(t, "", 1)
	body := gin.H{"name": "Ada", "email": "ada@example.com", "message": "Let's build something."}

	w := env.do(t, http.MethodPost, "/api/v1/contact", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ContactOutcomeLocal, decode[map[string]string](t, w)["outcome"])

	w = env.do(t, http.MethodPost, "/api/v1/contact", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
