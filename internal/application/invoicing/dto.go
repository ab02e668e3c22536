package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/remote"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceLineRequest represents one line in a create or update request.
// When UnitPrice is nil the line is priced from the product service.
type InvoiceLineRequest struct {
	ProductID   uuid.UUID        `json:"product_id" binding:"required"`
	Description string           `json:"description" binding:"max=255"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" binding:"max=50"`
	CompanyID     uuid.UUID            `json:"company_id" binding:"required"`
	PartnerID     uuid.UUID            `json:"partner_id" binding:"required"`
	IssueDate     time.Time            `json:"issue_date" binding:"required"`
	DueDate       time.Time            `json:"due_date" binding:"required"`
	ServiceDate   *time.Time           `json:"service_date"`
	Notes         string               `json:"notes" binding:"max=2000"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest represents a full-document invoice update. The line
// set replaces the stored one wholesale.
type UpdateInvoiceRequest struct {
	CompanyID   uuid.UUID            `json:"company_id" binding:"required"`
	PartnerID   uuid.UUID            `json:"partner_id" binding:"required"`
	IssueDate   time.Time            `json:"issue_date" binding:"required"`
	DueDate     time.Time            `json:"due_date" binding:"required"`
	ServiceDate *time.Time           `json:"service_date"`
	Notes       string               `json:"notes" binding:"max=2000"`
	Lines       []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest represents a status-only patch
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ISSUED PAID CANCELLED"`
}

// ProductResponse is the enriched product view attached to a line
type ProductResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CompanyResponse is the enriched company view attached to an invoice
type CompanyResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Street             string    `json:"street"`
	PostalCode         string    `json:"postal_code"`
	City               string    `json:"city"`
	IBAN               string    `json:"iban"`
	RegistrationNumber string    `json:"registration_number"`
	VATPayer           bool      `json:"vat_payer"`
	VATID              string    `json:"vat_id"`
}

// PartnerResponse is the enriched partner view attached to an invoice
type PartnerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	VATLiable  bool      `json:"vat_liable"`
	TaxNumber  string    `json:"tax_number"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID        `json:"id"`
	Position    int              `json:"position"`
	ProductID   uuid.UUID        `json:"product_id"`
	Product     *ProductResponse `json:"product,omitempty"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	LineTotal   decimal.Decimal  `json:"line_total"`
}

// InvoiceResponse represents a full invoice in API responses. The Company,
// Partner and per-line Product fields are filled from the peer services when
// they answer; they stay null when a peer is down.
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	UserID        uuid.UUID             `json:"user_id"`
	CompanyID     uuid.UUID             `json:"company_id"`
	PartnerID     uuid.UUID             `json:"partner_id"`
	CompanyName   *string               `json:"company_name,omitempty"`
	PartnerName   *string               `json:"partner_name,omitempty"`
	Company       *CompanyResponse      `json:"company,omitempty"`
	Partner       *PartnerResponse      `json:"partner,omitempty"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	ServiceDate   *time.Time            `json:"service_date,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Status        string                `json:"status"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxTotal      decimal.Decimal       `json:"tax_total"`
	Total         decimal.Decimal       `json:"total"`
	Lines         []InvoiceLineResponse `json:"lines"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListResponse represents a list item. It renders entirely from the
// header snapshot; no remote calls are involved.
type InvoiceListResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CompanyID     uuid.UUID       `json:"company_id"`
	PartnerID     uuid.UUID       `json:"partner_id"`
	CompanyName   *string         `json:"company_name,omitempty"`
	PartnerName   *string         `json:"partner_name,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceListFilter represents list query parameters
type InvoiceListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at issue_date due_date invoice_number total status"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Enrichment carries whatever the peer services answered for one invoice.
// Any of the fields may be nil when the corresponding service was down.
type Enrichment struct {
	Company  *remote.Company
	Partner  *remote.Partner
	Products map[uuid.UUID]remote.Product
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *invoicing.Invoice, enrichment *Enrichment) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		UserID:        inv.UserID,
		CompanyID:     inv.CompanyID,
		PartnerID:     inv.PartnerID,
		CompanyName:   inv.CompanyName,
		PartnerName:   inv.PartnerName,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		ServiceDate:   inv.ServiceDate,
		Notes:         inv.Notes,
		Status:        inv.Status.String(),
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		Total:         inv.Total,
		Lines:         make([]InvoiceLineResponse, len(inv.Lines)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}

	for i, line := range inv.Lines {
		resp.Lines[i] = InvoiceLineResponse{
			ID:          line.ID,
			Position:    line.Position,
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}

	if enrichment == nil {
		return resp
	}
	if enrichment.Company != nil {
		resp.Company = toCompanyResponse(enrichment.Company)
	}
	if enrichment.Partner != nil {
		resp.Partner = toPartnerResponse(enrichment.Partner)
	}
	for i := range resp.Lines {
		if product, ok := enrichment.Products[resp.Lines[i].ProductID]; ok {
			resp.Lines[i].Product = &ProductResponse{
				ID:    product.ID,
				Name:  product.Name,
				Price: product.Price,
			}
		}
	}
	return resp
}

// ToInvoiceListResponse converts a domain invoice header to a list item DTO
func ToInvoiceListResponse(inv *invoicing.Invoice) InvoiceListResponse {
	return InvoiceListResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CompanyID:     inv.CompanyID,
		PartnerID:     inv.PartnerID,
		CompanyName:   inv.CompanyName,
		PartnerName:   inv.PartnerName,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status.String(),
		Total:         inv.Total,
		CreatedAt:     inv.CreatedAt,
	}
}

func toCompanyResponse(c *remote.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Street:             c.Street,
		PostalCode:         c.PostalCode,
		City:               c.City,
		IBAN:               c.IBAN,
		RegistrationNumber: c.RegistrationNumber,
		VATPayer:           c.VATPayer,
		VATID:              c.VATID,
	}
}

func toPartnerResponse(p *remote.Partner) *PartnerResponse {
	return &PartnerResponse{
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
