package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/remote"
)

// PartnerClient talks to the partner service over HTTP/JSON
type PartnerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPartnerClient creates a new PartnerClient
func NewPartnerClient(cfg *Config) *PartnerClient {
	return &PartnerClient{
		baseURL:    trimBase(cfg.PartnerBaseURL),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchPartner fetches a single partner by ID
func (c *PartnerClient) FetchPartner(ctx context.Context, id uuid.UUID) (*remote.Partner, error) {
	var payload partnerPayload
	url := fmt.Sprintf("%s/partners/%s", c.baseURL, id)
	if err := getJSON(ctx, c.httpClient, url, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}
