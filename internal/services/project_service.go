package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

var defaultProjects = []models.Project{
	{
		ID:    "p-1",
		Title: "Personal Portfolio",
		Desc:  "Responsive multi-section portfolio built with vanilla JS.",
		Tech:  []string{"HTML", "CSS", "JavaScript"},
		Link:  "index.html",
	},
	{
		ID:    "p-2",
		Title: "To-Do App",
		Desc:  "Add, edit, complete and tag tasks, persisted in a key-value store.",
		Tech:  []string{"Go", "gin", "JavaScript"},
		Link:  "todo.html",
	},
	{
		ID:    "p-3",
		Title: "Product Listing Demo",
		Desc:  "Product grid with filters and sorting options.",
		Tech:  []string{"Go", "HTML", "JavaScript"},
		Link:  "products.html",
	},
}

type projectServiceImpl struct {
	logger   zerolog.Logger
	projects []models.Project
}

func NewProjectService(logger zerolog.Logger) ProjectService {
	return &projectServiceImpl{
		logger:   logger,
		projects: defaultProjects,
	}
}

func (s *projectServiceImpl) List(_ context.Context) []models.Project {
	return append([]models.Project{}, s.projects...)
}

func (s *projectServiceImpl) Get(_ context.Context, id string) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return &p, nil
		}
	}

	s.logger.Warn().
		Str("project_id", id).
		Msg("project not found")
	return nil, ErrProjectNotFound
}
