package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/adanyl0v/go-portfolio/internal/models"
)

const (
	CategoryAll = "all"

	SortNone       = ""
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingDesc = "rating-desc"
)

// Query describes the product grid controls. A nil bound is open.
type Query struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

func IsValidSort(s string) bool {
	switch s {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

// Filter returns the products matching q, sorted when q.Sort is set.
// The input slice is left untouched.
func Filter(products []models.Product, q Query) []models.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "" {
		category = CategoryAll
	}
	minPrice, maxPrice := 0.0, math.Inf(1)
	if q.MinPrice != nil {
		minPrice = *q.MinPrice
	}
	if q.MaxPrice != nil {
		maxPrice = *q.MaxPrice
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		title := strings.ToLower(p.Title)
		pCategory := strings.ToLower(p.Category)

		if !strings.Contains(title, search) && !strings.Contains(pCategory, search) {
			continue
		}
		if category != CategoryAll && pCategory != category {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}

	return out
}

// Categories lists CategoryAll followed by the distinct product
// categories in first-seen order.
func Categories(products []models.Product) []string {
	out := []string{CategoryAll}
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// SampleProducts is served whenever the catalog resource is unavailable.
func SampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Eco Water Bottle", Price: 19.99, Category: "Home", Rating: 4.5, Img: "https://picsum.photos/seed/p1/400/300"},
		{ID: 2, Title: "Wireless Headphones", Price: 89.99, Category: "Electronics", Rating: 4.8, Img: "https://picsum.photos/seed/p2/400/300"},
		{ID: 3, Title: "Yoga Mat", Price: 29.99, Category: "Fitness", Rating: 4.2, Img: "https://picsum.photos/seed/p3/400/300"},
		{ID: 4, Title: "Coffee Maker", Price: 59.99, Category: "Home", Rating: 4.0, Img: "https://picsum.photos/seed/p4/400/300"},
		{ID: 5, Title: "Running Shoes", Price: 120.00, Category: "Fitness", Rating: 4.7, Img: "https://picsum.photos/seed/p5/400/300"},
		{ID: 6, Title: "Smart Lamp", Price: 39.50, Category: "Electronics", Rating: 3.9, Img: "https://picsum.photos/seed/p6/400/300"},
	}
}
