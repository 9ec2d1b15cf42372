// Package models contains the GORM persistence models. Domain entities carry
// no ORM tags; each model converts to and from its aggregate with ToDomain
// and FromDomain.
//
//   - base.go: shared identity, version and tenant columns
//   - catalog.go: categories and manufacturers
//   - merchandising.go: homepage display layouts
package models
