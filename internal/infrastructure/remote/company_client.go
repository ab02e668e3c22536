package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/remote"
)

// CompanyClient talks to the company service over HTTP/JSON
type CompanyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCompanyClient creates a new CompanyClient
func NewCompanyClient(cfg *Config) *CompanyClient {
	return &CompanyClient{
		baseURL:    trimBase(cfg.CompanyBaseURL),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchCompany fetches a single company by ID
func (c *CompanyClient) FetchCompany(ctx context.Context, id uuid.UUID) (*remote.Company, error) {
	var payload companyPayload
	url := fmt.Sprintf("%s/companies/%s", c.baseURL, id)
	if err := getJSON(ctx, c.httpClient, url, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}
