package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-portfolio/internal/models"
	"github.com/adanyl0v/go-portfolio/internal/services"
)

type getProjectResponse struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Desc  string   `json:"desc"`
	Tech  []string `json:"tech"`
	Link  string   `json:"link"`
}

func newGetProjectResponse(p *models.Project) getProjectResponse {
	return getProjectResponse{
		ID:    p.ID,
		Title: p.Title,
		Desc:  p.Desc,
		Tech:  p.Tech,
		Link:  p.Link,
	}
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	projects := h.projects.List(c)

	response := make([]getProjectResponse, len(projects))
	for i := range projects {
		response[i] = newGetProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	project, err := h.projects.Get(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			abort(c, newNotFoundError(err.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get project")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newGetProjectResponse(project))
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
