package remote

import (
	"github.com/invoicehub/backend/internal/domain/remote"
)

// Gateway bundles the three peer-service clients behind the domain port.
type Gateway struct {
	*ProductClient
	*CompanyClient
	*PartnerClient
}

// NewGateway creates a Gateway from the given configuration
func NewGateway(cfg *Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Gateway{
		ProductClient: NewProductClient(cfg),
		CompanyClient: NewCompanyClient(cfg),
		PartnerClient: NewPartnerClient(cfg),
	}, nil
}

// Ensure Gateway implements PricingGateway
var _ remote.PricingGateway = (*Gateway)(nil)
