package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
)

// invoiceCounterSQL bumps the single-row counter and returns the new value.
// The upsert form is atomic on both PostgreSQL and SQLite.
const invoiceCounterSQL = `INSERT INTO invoice_counters (id, value) VALUES (1, 1)
ON CONFLICT (id) DO UPDATE SET value = invoice_counters.value + 1
RETURNING value`

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create persists the invoice header and its lines in one transaction.
// When the invoice carries no number yet, one is allocated inside the
// same transaction so a failed insert never burns a gap silently.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.InvoiceNumber == "" {
			number, err := nextInvoiceNumber(tx)
			if err != nil {
				return err
			}
			invoice.InvoiceNumber = number
		}

		var model models.InvoiceModel
		model.FromDomain(invoice)
		if err := tx.Create(&model).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: invoice number %s is already taken",
					shared.ErrAlreadyExists, invoice.InvoiceNumber)
			}
			return err
		}
		return nil
	})
}

// isDuplicateKey reports whether err is a unique-constraint violation. GORM
// translates these for the postgres driver when error translation is on;
// the raw driver errors are matched as a fallback.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// FindByIDForUser finds an invoice by ID scoped to the owning user,
// preloading its lines in display order
func (r *GormInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all invoices for a user with pagination.
// Lines are intentionally not loaded; the header snapshot is enough
// for list rendering.
func (r *GormInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}
	invoices := make([]invoicing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, total, nil
}

// Update replaces the header fields and the full line set in one transaction
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.InvoiceModel
		model.FromDomain(invoice)

		result := tx.Model(&models.InvoiceModel{}).
			Where("user_id = ? AND id = ?", invoice.UserID, invoice.ID).
			Select("company_id", "partner_id", "company_name", "partner_name",
				"issue_date", "due_date", "service_date", "notes", "status",
				"subtotal", "tax_total", "total", "updated_at").
			Updates(&model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// Lines are replaced wholesale. SQLite does not always honor the
		// cascade constraint, so delete explicitly.
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) > 0 {
			if err := tx.Create(&model.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStatus patches only the lifecycle status of an invoice
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status invoicing.InvoiceStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForUser removes the invoice and its lines
func (r *GormInvoiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.InvoiceModel{}, "user_id = ? AND id = ?", userID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("invoice_id = ?", id).
			Delete(&models.InvoiceLineModel{}).Error
	})
}

// NextInvoiceNumber allocates the next monotonic invoice number
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := nextInvoiceNumber(tx)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	return number, err
}

// nextInvoiceNumber bumps the counter within the caller's transaction
func nextInvoiceNumber(tx *gorm.DB) (string, error) {
	var value int64
	if err := tx.Raw(invoiceCounterSQL).Scan(&value).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", value), nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
