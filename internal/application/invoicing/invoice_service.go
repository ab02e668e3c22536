package invoicing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/remote"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/telemetry"
)

// InvoiceService handles invoice business operations. Pricing and the
// company/partner snapshots come from the peer services; totals are derived
// locally at the configured tax rate.
type InvoiceService struct {
	repo    invoicing.InvoiceRepository
	gateway remote.PricingGateway
	taxRate decimal.Decimal
	logger  *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	repo invoicing.InvoiceRepository,
	gateway remote.PricingGateway,
	taxRate decimal.Decimal,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:    repo,
		gateway: gateway,
		taxRate: taxRate,
		logger:  logger,
	}
}

// Create assembles and persists a new invoice. Lines without a caller
// supplied unit price are priced via the product service; a product that
// cannot be resolved fails the whole request. The company and partner name
// snapshots are best-effort and never block creation.
func (s *InvoiceService) Create(ctx context.Context, userID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InvoiceService", "Create")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrUserID, userID.String())
	telemetry.SetAttribute(span, telemetry.SpanAttrLineCount, len(req.Lines))

	lines, err := s.priceLines(ctx, req.Lines)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(
		userID, req.CompanyID, req.PartnerID,
		req.IssueDate, req.DueDate, req.ServiceDate,
		req.Notes, lines, s.taxRate,
	)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = req.InvoiceNumber

	s.snapshotNames(ctx, invoice)

	if err := s.repo.Create(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, invoice.ID.String())
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceNumber, invoice.InvoiceNumber)
	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("user_id", userID.String()),
		zap.String("total", invoice.Total.String()),
	)

	response := ToInvoiceResponse(invoice, nil)
	return &response, nil
}

// GetByID loads an invoice and enriches it from the peer services. Each of
// the three lookups fails independently; a dead peer degrades the response
// to stored snapshots instead of failing the read.
func (s *InvoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InvoiceService", "GetByID")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, invoiceID.String())

	invoice, err := s.repo.FindByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	enrichment := s.enrich(ctx, invoice)
	response := ToInvoiceResponse(invoice, enrichment)
	return &response, nil
}

// List returns the user's invoices from header snapshots only. No remote
// calls are made here.
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	invoices, total, err := s.repo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceListResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListResponse(&invoices[i])
	}
	return responses, total, nil
}

// Update replaces the invoice document: header fields and the full line
// set, re-priced under the same policy as creation. Last writer wins.
func (s *InvoiceService) Update(ctx context.Context, userID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InvoiceService", "Update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, invoiceID.String())

	if req.DueDate.Before(req.IssueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	invoice, err := s.repo.FindByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.priceLines(ctx, req.Lines)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	invoice.CompanyID = req.CompanyID
	invoice.PartnerID = req.PartnerID
	// Drop the stored name snapshots before refreshing them, otherwise a
	// failed lookup would leave the previous party's name attached to the
	// new company or partner id.
	invoice.CompanyName = nil
	invoice.PartnerName = nil
	invoice.IssueDate = req.IssueDate
	invoice.DueDate = req.DueDate
	invoice.ServiceDate = req.ServiceDate
	invoice.Notes = req.Notes
	if err := invoice.ReplaceLines(lines, s.taxRate); err != nil {
		return nil, err
	}

	s.snapshotNames(ctx, invoice)

	if err := s.repo.Update(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Invoice updated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("user_id", userID.String()),
	)

	response := ToInvoiceResponse(invoice, nil)
	return &response, nil
}

// UpdateStatus patches the lifecycle status of an invoice
func (s *InvoiceService) UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status string) error {
	newStatus := invoicing.InvoiceStatus(status)
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of ISSUED, PAID, CANCELLED")
	}

	if err := s.repo.UpdateStatus(ctx, userID, invoiceID, newStatus); err != nil {
		return err
	}

	s.logger.Info("Invoice status changed",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("status", status),
	)
	return nil
}

// Delete removes an invoice and its lines
func (s *InvoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	if err := s.repo.DeleteForUser(ctx, userID, invoiceID); err != nil {
		return err
	}

	s.logger.Info("Invoice deleted",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// priceLines turns line requests into priced domain lines. A line with a
// caller-supplied unit price uses it verbatim; the rest are priced from one
// batch fetch. Unknown products and an unreachable product service are both
// hard failures, so no invoice ever stores a silently zero-priced line.
func (s *InvoiceService) priceLines(ctx context.Context, reqs []InvoiceLineRequest) ([]invoicing.InvoiceLine, error) {
	var toPrice []uuid.UUID
	for _, lr := range reqs {
		if lr.UnitPrice == nil {
			toPrice = append(toPrice, lr.ProductID)
		}
	}

	var products map[uuid.UUID]remote.Product
	if len(toPrice) > 0 {
		var err error
		products, err = s.gateway.FetchProductsBatch(ctx, toPrice)
		if err != nil {
			s.logger.Error("Product batch fetch failed", zap.Error(err))
			return nil, shared.ErrDependencyUnavailable
		}
	}

	lines := make([]invoicing.InvoiceLine, 0, len(reqs))
	for _, lr := range reqs {
		unitPrice := lr.UnitPrice
		description := lr.Description

		if unitPrice == nil {
			product, ok := products[lr.ProductID]
			if !ok {
				return nil, shared.NewDomainError("INVALID_PRODUCT",
					fmt.Sprintf("Product %s does not exist", lr.ProductID))
			}
			unitPrice = &product.Price
			if description == "" {
				description = product.Name
			}
		}

		line, err := invoicing.NewInvoiceLine(lr.ProductID, description, lr.Quantity, *unitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// snapshotNames fills the company and partner name snapshots from the peer
// services. Both lookups run concurrently and any failure only costs the
// snapshot, never the write.
func (s *InvoiceService) snapshotNames(ctx context.Context, invoice *invoicing.Invoice) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		company, err := s.gateway.FetchCompany(ctx, invoice.CompanyID)
		if err != nil {
			s.logger.Warn("Company snapshot unavailable",
				zap.String("company_id", invoice.CompanyID.String()),
				zap.Error(err))
			return
		}
		invoice.SetCompanySnapshot(company.Name)
	}()

	go func() {
		defer wg.Done()
		partner, err := s.gateway.FetchPartner(ctx, invoice.PartnerID)
		if err != nil {
			s.logger.Warn("Partner snapshot unavailable",
				zap.String("partner_id", invoice.PartnerID.String()),
				zap.Error(err))
			return
		}
		invoice.SetPartnerSnapshot(partner.Name)
	}()

	wg.Wait()
}

// enrich issues the three peer lookups for a stored invoice concurrently.
// Failures are logged and leave the corresponding field nil.
func (s *InvoiceService) enrich(ctx context.Context, invoice *invoicing.Invoice) *Enrichment {
	enrichment := &Enrichment{}

	productIDs := make([]uuid.UUID, 0, len(invoice.Lines))
	for _, line := range invoice.Lines {
		productIDs = append(productIDs, line.ProductID)
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		company, err := s.gateway.FetchCompany(ctx, invoice.CompanyID)
		if err != nil {
			s.logWarnUnlessNotFound("Company enrichment skipped", invoice.CompanyID, err)
			return
		}
		enrichment.Company = company
	}()

	go func() {
		defer wg.Done()
		partner, err := s.gateway.FetchPartner(ctx, invoice.PartnerID)
		if err != nil {
			s.logWarnUnlessNotFound("Partner enrichment skipped", invoice.PartnerID, err)
			return
		}
		enrichment.Partner = partner
	}()

	go func() {
		defer wg.Done()
		products, err := s.gateway.FetchProductsBatch(ctx, productIDs)
		if err != nil {
			// The partial map is still worth rendering on a read.
			s.logger.Warn("Product enrichment degraded", zap.Error(err))
		}
		if len(products) > 0 {
			enrichment.Products = products
		}
	}()

	wg.Wait()
	return enrichment
}

func (s *InvoiceService) logWarnUnlessNotFound(msg string, id uuid.UUID, err error) {
	if errors.Is(err, remote.ErrNotFound) {
		s.logger.Debug(msg, zap.String("id", id.String()), zap.Error(err))
		return
	}
	s.logger.Warn(msg, zap.String("id", id.String()), zap.Error(err))
}
