package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null"`
	PartnerID     uuid.UUID `gorm:"type:uuid;not null"`
	CompanyName   *string   `gorm:"type:varchar(255)"`
	PartnerName   *string   `gorm:"type:varchar(255)"`
	IssueDate     time.Time `gorm:"not null"`
	DueDate       time.Time `gorm:"not null"`
	ServiceDate   *time.Time
	Notes         string             `gorm:"type:text"`
	Status        string             `gorm:"type:varchar(20);not null;default:'ISSUED'"`
	Subtotal      decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	TaxTotal      decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	Total         decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	CreatedAt     time.Time          `gorm:"not null;index"`
	UpdatedAt     time.Time          `gorm:"not null"`
	Lines         []InvoiceLineModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for invoice lines.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for InvoiceLineModel
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// FromDomain populates the model from the domain aggregate
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.ID = inv.ID
	m.InvoiceNumber = inv.InvoiceNumber
	m.UserID = inv.UserID
	m.CompanyID = inv.CompanyID
	m.PartnerID = inv.PartnerID
	m.CompanyName = inv.CompanyName
	m.PartnerName = inv.PartnerName
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.ServiceDate = inv.ServiceDate
	m.Notes = inv.Notes
	m.Status = inv.Status.String()
	m.Subtotal = inv.Subtotal
	m.TaxTotal = inv.TaxTotal
	m.Total = inv.Total
	m.CreatedAt = inv.CreatedAt
	m.UpdatedAt = inv.UpdatedAt

	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i, line := range inv.Lines {
		m.Lines[i].FromDomain(&line)
	}
}

// ToDomain converts the model to the domain aggregate
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		InvoiceNumber: m.InvoiceNumber,
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		PartnerID:     m.PartnerID,
		CompanyName:   m.CompanyName,
		PartnerName:   m.PartnerName,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		ServiceDate:   m.ServiceDate,
		Notes:         m.Notes,
		Status:        invoicing.InvoiceStatus(m.Status),
		Subtotal:      m.Subtotal,
		TaxTotal:      m.TaxTotal,
		Total:         m.Total,
	}
	if len(m.Lines) > 0 {
		inv.Lines = make([]invoicing.InvoiceLine, len(m.Lines))
		for i := range m.Lines {
			inv.Lines[i] = *m.Lines[i].ToDomain()
		}
	}
	return inv
}

// FromDomain populates the line model from the domain entity
func (m *InvoiceLineModel) FromDomain(line *invoicing.InvoiceLine) {
	m.ID = line.ID
	m.InvoiceID = line.InvoiceID
	m.Position = line.Position
	m.ProductID = line.ProductID
	m.Description = line.Description
	m.Quantity = line.Quantity
	m.UnitPrice = line.UnitPrice
	m.LineTotal = line.LineTotal
	m.CreatedAt = line.CreatedAt
	m.UpdatedAt = line.UpdatedAt
}

// ToDomain converts the line model to the domain entity
func (m *InvoiceLineModel) ToDomain() *invoicing.InvoiceLine {
	return &invoicing.InvoiceLine{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		InvoiceID:   m.InvoiceID,
		Position:    m.Position,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
	}
}

// InvoiceCounterModel backs the atomic invoice-number allocator.
type InvoiceCounterModel struct {
	ID    int   `gorm:"primary_key"`
	Value int64 `gorm:"not null"`
}

// TableName returns the table name for InvoiceCounterModel
func (InvoiceCounterModel) TableName() string {
	return "invoice_counters"
}
