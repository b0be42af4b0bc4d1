// Package models contains the GORM persistence models behind the POS
// repositories. Domain types carry no ORM tags; each model converts with
// ToDomain and a ...FromDomain constructor.
//
//   - base.go: shared id and timestamp columns
//   - catalog.go: products, menu groups, menus and menu products
//   - table.go: order tables, table groups and their member history
//   - order.go: orders and order line items
package models
