// Package invoicing contains the Invoicing bounded context.
//
// Key concepts:
//   - Invoice: aggregate root owning an ordered set of InvoiceLine entities
//   - InvoiceLine: a product reference, quantity and priced snapshot
//   - Totals: subtotal / tax total / grand total derived from the lines
//   - InvoiceRepository: persistence port, implemented in the infrastructure layer
//
// Money is handled exclusively with shopspring decimals; line totals and
// header totals are derived, never mutated independently.
package invoicing
