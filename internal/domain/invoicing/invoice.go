package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceLine is one product-reference + quantity entry within an invoice.
// It carries a priced snapshot taken at assembly time so list and detail
// reads never depend on the product service.
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Position    int             `json:"position"`
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewInvoiceLine creates a priced invoice line. The line total is derived
// here and is the only place it is ever written.
func NewInvoiceLine(productID uuid.UUID, description string, quantity int, unitPrice decimal.Decimal) (*InvoiceLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	return &InvoiceLine{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   LineTotal(quantity, unitPrice),
	}, nil
}

// Invoice represents an invoice aggregate root. Besides the remote entity
// references it stores denormalized snapshots (company/partner names and the
// derived totals) so that list rendering needs no remote calls.
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string          `json:"invoice_number"`
	UserID        uuid.UUID       `json:"user_id"`
	CompanyID     uuid.UUID       `json:"company_id"`
	PartnerID     uuid.UUID       `json:"partner_id"`
	CompanyName   *string         `json:"company_name,omitempty"`
	PartnerName   *string         `json:"partner_name,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	ServiceDate   *time.Time      `json:"service_date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	Total         decimal.Decimal `json:"total"`
	Lines         []InvoiceLine   `json:"lines"`
}

// NewInvoice assembles an invoice from priced lines. Totals are derived from
// the lines at the given tax rate; the invoice starts in ISSUED status.
func NewInvoice(
	userID, companyID, partnerID uuid.UUID,
	issueDate, dueDate time.Time,
	serviceDate *time.Time,
	notes string,
	lines []InvoiceLine,
	taxRate decimal.Decimal,
) (*Invoice, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_LINES", "An invoice must have at least one line")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	inv := &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		CompanyID:   companyID,
		PartnerID:   partnerID,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		ServiceDate: serviceDate,
		Notes:       notes,
		Status:      InvoiceStatusIssued,
	}
	if err := inv.attachLines(lines, taxRate); err != nil {
		return nil, err
	}
	return inv, nil
}

// attachLines wires lines to the invoice, fixes their display order and
// re-derives the header totals.
func (i *Invoice) attachLines(lines []InvoiceLine, taxRate decimal.Decimal) error {
	totals, err := ComputeTotals(lines, taxRate)
	if err != nil {
		return err
	}
	for idx := range lines {
		lines[idx].InvoiceID = i.ID
		lines[idx].Position = idx
	}
	i.Lines = lines
	i.Subtotal = totals.Subtotal
	i.TaxTotal = totals.TaxTotal
	i.Total = totals.Total
	return nil
}

// ReplaceLines swaps the full line set for a new one, re-deriving totals.
// Insertion order of the new slice becomes the display order.
func (i *Invoice) ReplaceLines(lines []InvoiceLine, taxRate decimal.Decimal) error {
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_LINES", "An invoice must have at least one line")
	}
	return i.attachLines(lines, taxRate)
}

// ChangeStatus overwrites the lifecycle status. Transitions are free-form;
// only enum membership is enforced.
func (i *Invoice) ChangeStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of ISSUED, PAID, CANCELLED")
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return nil
}

// SetCompanySnapshot records the company name snapshot used for list views.
func (i *Invoice) SetCompanySnapshot(name string) {
	i.CompanyName = &name
}

// SetPartnerSnapshot records the partner name snapshot used for list views.
func (i *Invoice) SetPartnerSnapshot(name string) {
	i.PartnerName = &name
}
