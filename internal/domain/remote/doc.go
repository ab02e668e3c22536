// Package remote contains the port contracts for the peer services the
// invoice service depends on: product, company and partner.
//
// Key concepts:
//   - PricingGateway: port interface for fetching products, companies and partners
//   - Product/Company/Partner: value objects carried back from the peer services
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (HTTP clients) are in the infrastructure layer
package remote
