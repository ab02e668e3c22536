package remote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/remote"
)

// productPayload is the product-service wire shape
type productPayload struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (p *productPayload) toDomain() *remote.Product {
	return &remote.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}

// companyPayload is the company-service wire shape
type companyPayload struct {
	ID                 uuid.UUID `json:"id"`
	CompanyName        string    `json:"companyName"`
	Street             string    `json:"street"`
	PostalCode         string    `json:"postalCode"`
	City               string    `json:"city"`
	IBAN               string    `json:"iban"`
	RegistrationNumber string    `json:"registrationNumber"`
	VATPayer           bool      `json:"vatPayer"`
	VATID              string    `json:"vatId"`
}

func (c *companyPayload) toDomain() *remote.Company {
	return &remote.Company{
		ID:                 c.ID,
		Name:               c.CompanyName,
		Street:             c.Street,
		PostalCode:         c.PostalCode,
		City:               c.City,
		IBAN:               c.IBAN,
		RegistrationNumber: c.RegistrationNumber,
		VATPayer:           c.VATPayer,
		VATID:              c.VATID,
	}
}

// partnerPayload is the partner-service wire shape
type partnerPayload struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	VATLiable  bool      `json:"vatLiable"`
	TaxNumber  string    `json:"taxNumber"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

func (p *partnerPayload) toDomain() *remote.Partner {
	return &remote.Partner{
		ID:         p.ID,
		Name:       p.Name,
		Street:     p.Street,
		City:       p.City,
		PostalCode: p.PostalCode,
		VATLiable:  p.VATLiable,
		TaxNumber:  p.TaxNumber,
		Email:      p.Email,
		Phone:      p.Phone,
	}
}
