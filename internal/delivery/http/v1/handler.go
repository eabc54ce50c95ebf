package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/adanyl0v/go-portfolio/internal/services"
)

type Handler interface {
	HandleRequestIDMiddleware(c *gin.Context)
	HandleLoggerMiddleware(c *gin.Context)
	HandleRateLimitMiddleware(c *gin.Context)

	HandleHealth(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTaskCategories(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleEditTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleClearCompletedTasks(c *gin.Context)
	HandleClearAllTasks(c *gin.Context)

	HandleGetProducts(c *gin.Context)
	HandleGetProductCategories(c *gin.Context)
	HandleReloadProducts(c *gin.Context)

	HandleGetProjects(c *gin.Context)
	HandleGetProject(c *gin.Context)

	HandleSubmitContact(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	tasks    services.TaskService
	products services.ProductService
	contact  services.ContactService
	projects services.ProjectService
	limiter  *visitorLimiter
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	productService services.ProductService,
	contactService services.ContactService,
	projectService services.ProjectService,
	rateLimit rate.Limit,
	rateBurst int,
) Handler {
	return &handlerImpl{
		logger:   logger,
		tasks:    taskService,
		products: productService,
		contact:  contactService,
		projects: projectService,
		limiter:  newVisitorLimiter(rateLimit, rateBurst),
	}
}

// RegisterRoutes mounts the API under router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/healthz", h.HandleHealth)

	router = router.Group("/api/v1")

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/categories", h.HandleGetTaskCategories)
	tasksRouter.POST("/clear-completed", h.HandleClearCompletedTasks)
	tasksRouter.POST("/clear-all", h.HandleClearAllTasks)
	tasksRouter.PATCH("/:id", h.HandleEditTask)
	tasksRouter.PATCH("/:id/toggle", h.HandleToggleTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	productsRouter := router.Group("/products")
	productsRouter.GET("", h.HandleGetProducts)
	productsRouter.GET("/categories", h.HandleGetProductCategories)
	productsRouter.POST("/reload", h.HandleReloadProducts)

	projectsRouter := router.Group("/projects")
	projectsRouter.GET("", h.HandleGetProjects)
	projectsRouter.GET("/:id", h.HandleGetProject)

	router.POST("/contact", h.HandleRateLimitMiddleware, h.HandleSubmitContact)
}
