package v1

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-portfolio/internal/domain/catalog"
	"github.com/adanyl0v/go-portfolio/internal/models"
)

type getProductResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	Img      string  `json:"img"`
}

type getProductsResponse struct {
	Count    int                  `json:"count"`
	Products []getProductResponse `json:"products"`
}

func newGetProductsResponse(products []models.Product) getProductsResponse {
	response := getProductsResponse{
		Count:    len(products),
		Products: make([]getProductResponse, len(products)),
	}
	for i, p := range products {
		response.Products[i] = getProductResponse(p)
	}
	return response
}

func (h *handlerImpl) HandleGetProducts(c *gin.Context) {
	query := catalog.Query{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if !catalog.IsValidSort(query.Sort) {
		h.logger.Error().
			Str("sort", query.Sort).
			Msg("invalid sort")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	var err error
	query.MinPrice, err = parsePrice(c.Query("min_price"))
	if err == nil {
		query.MaxPrice, err = parsePrice(c.Query("max_price"))
	}
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid price range")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	c.JSON(http.StatusOK, newGetProductsResponse(h.products.Search(c, query)))
}

func (h *handlerImpl) HandleGetProductCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.products.Categories(c),
	})
}

func (h *handlerImpl) HandleReloadProducts(c *gin.Context) {
	products := h.products.Reload(c)
	h.logger.Info().
		Int("count", len(products)).
		Msg("reloaded products")
	c.JSON(http.StatusOK, newGetProductsResponse(products))
}

// parsePrice returns nil for an empty value and rejects non-finite ones.
func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("price %q is not finite", raw)
	}
	return &v, nil
}
