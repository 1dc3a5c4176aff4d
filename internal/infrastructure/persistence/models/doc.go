// Package models holds the GORM row types behind the costing repositories.
// Domain types carry no ORM tags; each model converts to and from its domain
// counterpart, and All lists the tables sqlite builds at startup.
package models
