package remote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway failure taxonomy. Every call either succeeds, reports that the
// referenced entity does not exist, or reports that the peer service could
// not be reached. Call sites decide which of the two failures is fatal.
var (
	ErrNotFound    = errors.New("remote: entity not found")
	ErrUnavailable = errors.New("remote: service unavailable")
)

// Product is the pricing view of a product held by the product service.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// Company is the subset of company-service data the invoice service renders.
type Company struct {
	ID                 uuid.UUID
	Name               string
	Street             string
	PostalCode         string
	City               string
	IBAN               string
	RegistrationNumber string
	VATPayer           bool
	VATID              string
}

// Partner is the subset of partner-service data the invoice service renders.
type Partner struct {
	ID         uuid.UUID
	Name       string
	Street     string
	City       string
	PostalCode string
	VATLiable  bool
	TaxNumber  string
	Email      string
	Phone      string
}

// PricingGateway is the port to the three peer services.
//
// FetchProduct, FetchCompany and FetchPartner perform a single attempt and
// return either the entity, ErrNotFound, or ErrUnavailable (possibly wrapped).
//
// FetchProductsBatch distinguishes the two failure modes per id: ids the
// product service reports as missing are simply absent from the result map,
// while any id that could not be fetched at all makes the call return
// ErrUnavailable alongside whatever partial map was assembled. Callers that
// only enrich may keep the partial map; callers that price must not treat
// an unreachable product as a missing one.
type PricingGateway interface {
	FetchProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	FetchProductsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)
	FetchCompany(ctx context.Context, id uuid.UUID) (*Company, error)
	FetchPartner(ctx context.Context, id uuid.UUID) (*Partner, error)
}
