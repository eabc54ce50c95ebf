package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-portfolio/internal/domain/catalog"
	"github.com/adanyl0v/go-portfolio/internal/models"
)

type productServiceImpl struct {
	logger     zerolog.Logger
	httpClient *http.Client
	sourceURL  string

	// loadMu serializes fetches; mu guards the cached catalog.
	loadMu   sync.Mutex
	mu       sync.RWMutex
	loaded   bool
	products []models.Product
}

// NewProductService creates a catalog backed by the JSON document at
// sourceURL. An empty sourceURL serves the sample products.
func NewProductService(
	logger zerolog.Logger,
	httpClient *http.Client,
	sourceURL string,
) ProductService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &productServiceImpl{
		logger:     logger,
		httpClient: httpClient,
		sourceURL:  sourceURL,
	}
}

func (s *productServiceImpl) Products(ctx context.Context) []models.Product {
	if products, ok := s.cached(); ok {
		return products
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if products, ok := s.cached(); ok {
		return products
	}
	return s.load(ctx)
}

func (s *productServiceImpl) Reload(ctx context.Context) []models.Product {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	return s.load(ctx)
}

func (s *productServiceImpl) cached() ([]models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, false
	}
	return append([]models.Product{}, s.products...), true
}

func (s *productServiceImpl) Search(ctx context.Context, query catalog.Query) []models.Product {
	products := s.Products(ctx)
	result := catalog.Filter(products, query)
	s.logger.Debug().
		Str("query", query.Search).
		Str("category", query.Category).
		Str("sort", query.Sort).
		Int("count", len(result)).
		Msg("filtered products")
	return result
}

func (s *productServiceImpl) Categories(ctx context.Context) []string {
	return catalog.Categories(s.Products(ctx))
}

// load fetches the catalog and caches it. The fetch outlives the caller's
// cancellation; a fallback caused by a canceled caller is served but not
// cached. Callers must hold loadMu.
func (s *productServiceImpl) load(ctx context.Context) []models.Product {
	products, err := s.fetch(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("url", s.sourceURL).
			Msg("failed to fetch products, using sample data")
		products = catalog.SampleProducts()

		if ctx.Err() != nil {
			s.logger.Debug().
				Err(ctx.Err()).
				Msg("caller canceled, not caching sample products")
			return products
		}
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info().
		Int("count", len(products)).
		Msg("loaded products")
	return append([]models.Product{}, products...)
}

func (s *productServiceImpl) fetch(ctx context.Context) ([]models.Product, error) {
	if s.sourceURL == "" {
		return nil, fmt.Errorf("no product source configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get products: unexpected status %d", resp.StatusCode)
	}

	var products []models.Product
	err = json.NewDecoder(resp.Body).Decode(&products)
	if err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
