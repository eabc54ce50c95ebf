package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-portfolio/internal/domain/todo"
	"github.com/adanyl0v/go-portfolio/internal/models"
	"github.com/adanyl0v/go-portfolio/internal/services"
)

type getTaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:        task.ID,
		Text:      task.Text,
		Priority:  task.Priority,
		Category:  task.Category,
		Tags:      task.Tags,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	filter := todo.ViewFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}

	tasks := h.tasks.List(c, filter)
	h.logger.Debug().
		Str("category", filter.Category).
		Str("tag", filter.Tag).
		Int("count", len(tasks)).
		Msg("listed tasks")

	response := make([]getTaskResponse, len(tasks))
	for i := range tasks {
		response[i] = newGetTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTaskCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.tasks.Categories(c),
	})
}

type createTaskRequest struct {
	Text     string   `json:"text" binding:"required,max=1024"`
	Priority string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category string   `json:"category" binding:"max=64"`
	Tags     []string `json:"tags" binding:"max=32"`
	// TagsCSV accepts the raw value of a comma separated tags input.
	TagsCSV string `json:"tags_csv" binding:"max=1024"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	tags := append(req.Tags, todo.ParseTags(req.TagsCSV)...)
	task, err := h.tasks.Add(c, services.AddTaskParams{
		Text:     req.Text,
		Priority: req.Priority,
		Category: req.Category,
		Tags:     tags,
	})
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	task, err := h.tasks.Toggle(c, taskID)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

type editTaskRequest struct {
	Text string `json:"text" binding:"max=1024"`
}

func (h *handlerImpl) HandleEditTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	var req editTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Edit(c, taskID, req.Text)
	if err != nil {
		// The previous text is returned so the client can restore it.
		if errors.Is(err, services.ErrEmptyTaskText) && task != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"task":  newGetTaskResponse(task),
			})
			return
		}
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errNoTaskID.Error()))
		return
	}

	err := h.tasks.Delete(c, taskID)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleClearCompletedTasks(c *gin.Context) {
	removed, err := h.tasks.ClearCompleted(c)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *handlerImpl) HandleClearAllTasks(c *gin.Context) {
	confirmed := false
	if raw := c.Query("confirm"); raw != "" {
		var err error
		confirmed, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("confirm", raw).
				Msg("invalid confirm parameter")
			abort(c, newBadRequestError(errInvalidQuery.Error()))
			return
		}
	}

	removed, err := h.tasks.ClearAll(c, confirmed)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrEmptyTaskText),
		errors.Is(err, services.ErrInvalidTaskPriority):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrConfirmationRequired):
		abort(c, newAPIError(http.StatusPreconditionRequired, err.Error()))
	case errors.Is(err, services.ErrPersistFailed):
		abort(c, newServiceUnavailableError(services.ErrPersistFailed.Error()))
	case errors.Is(err, services.ErrLoadFailed):
		abort(c, newServiceUnavailableError(services.ErrLoadFailed.Error()))
	default:
		h.logger.Error().
			Err(err).
			Msg("unexpected task service error")
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
