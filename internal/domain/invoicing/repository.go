package invoicing

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// InvoiceRepository defines the persistence port for the Invoice aggregate.
// Every read and mutation is scoped to the owning user.
type InvoiceRepository interface {
	// Create persists the invoice header and its lines in one transaction.
	// An empty InvoiceNumber is allocated atomically during creation.
	Create(ctx context.Context, invoice *Invoice) error

	// FindByIDForUser loads the aggregate with its lines in display order.
	// Returns shared.ErrNotFound if the invoice does not exist or belongs
	// to another user.
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Invoice, error)

	// FindAllForUser returns the user's invoices ordered by creation time
	// descending. Lines are not loaded; list rendering uses the header
	// snapshot columns only.
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Invoice, int64, error)

	// Update replaces the header fields and the full line set in one
	// transaction. Last writer wins.
	Update(ctx context.Context, invoice *Invoice) error

	// UpdateStatus patches only the lifecycle status.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status InvoiceStatus) error

	// DeleteForUser removes the invoice and cascades to its lines.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// NextInvoiceNumber allocates the next monotonic invoice number.
	// Allocation is atomic and safe under concurrent creates.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
