package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/remote"
)

// ProductClient talks to the product service over HTTP/JSON
type ProductClient struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
}

// NewProductClient creates a new ProductClient
func NewProductClient(cfg *Config) *ProductClient {
	return &ProductClient{
		baseURL:     trimBase(cfg.ProductBaseURL),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		concurrency: cfg.BatchConcurrency,
	}
}

// FetchProduct fetches a single product by ID
func (c *ProductClient) FetchProduct(ctx context.Context, id uuid.UUID) (*remote.Product, error) {
	var payload productPayload
	url := fmt.Sprintf("%s/products/%s", c.baseURL, id)
	if err := getJSON(ctx, c.httpClient, url, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// FetchProductsBatch resolves a set of product IDs with bounded fan-out.
// IDs the product service reports as missing are left out of the result
// map. When any fetch fails because the service could not be reached, the
// partial map is returned together with ErrUnavailable so a timed-out
// product is never mistaken for a nonexistent one.
func (c *ProductClient) FetchProductsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]remote.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]remote.Product{}, nil
	}

	// Dedupe so an invoice with repeated products costs one fetch per product.
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		products    = make(map[uuid.UUID]remote.Product, len(unique))
		unavailable int
	)
	sem := make(chan struct{}, c.concurrency)

	for _, id := range unique {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			product, err := c.FetchProduct(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				products[id] = *product
			case errors.Is(err, remote.ErrUnavailable):
				unavailable++
			}
		}(id)
	}
	wg.Wait()

	if unavailable > 0 {
		return products, fmt.Errorf("%w: %d of %d product lookups failed",
			remote.ErrUnavailable, unavailable, len(unique))
	}
	return products, nil
}
