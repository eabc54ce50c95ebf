package app

import (
	"context"
	"net/http"

	"github.com/adanyl0v/go-portfolio/internal/config"
	"github.com/adanyl0v/go-portfolio/internal/services"
)

var (
	globalTaskService    services.TaskService
	globalProductService services.ProductService
	globalContactService services.ContactService
	globalProjectService services.ProjectService
)

func MustInitServices() {
	cfg := config.Global()
	if globalStorage == nil {
		panic("storage is not opened")
	}

	globalTaskService = services.NewTaskService(
		globalLogger.With().Str("service", "tasks").Logger(),
		globalStorage,
		cfg.Tasks.StorageKey,
	)
	err := globalTaskService.Load(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("key", cfg.Tasks.StorageKey).
			Msg("failed to load tasks")
		panic(err)
	}

	globalProductService = services.NewProductService(
		globalLogger.With().Str("service", "products").Logger(),
		&http.Client{Timeout: cfg.Products.FetchTimeout},
		cfg.Products.SourceURL,
	)
	_ = globalProductService.Products(context.Background())
	globalContactService = services.NewContactService(
		globalLogger.With().Str("service", "contact").Logger(),
		&http.Client{Timeout: cfg.Contact.Timeout},
		cfg.Contact.Endpoint,
	)
	globalProjectService = services.NewProjectService(
		globalLogger.With().Str("service", "projects").Logger(),
	)

	globalLogger.Info().Msg("initialized services")
}
