package persistence

import (
	"strings"

	"github.com/supplements/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns maps the order_by values a listing accepts to table columns.
// Anything not in the map falls back to the listing's default, so request
// input never reaches the ORDER BY clause.
type sortColumns map[string]string

// column resolves field, or def when field is empty or unknown
func (s sortColumns) column(field, def string) string {
	if col, ok := s[strings.TrimSpace(field)]; ok {
		return col
	}
	return s[def]
}

// descending reports whether dir asks for descending order; only "asc" sorts ascending
func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

var productSort = sortColumns{
	"name":             "name",
	"brand":            "brand",
	"product_type":     "product_type",
	"current_stock":    "current_stock",
	"average_cost_gtq": "average_cost_gtq",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}

var purchaseSort = sortColumns{
	"order_date":    "order_date",
	"delivery_date": "delivery_date",
	"supplier_name": "supplier_name",
	"status":        "status",
	"created_at":    "created_at",
}

var saleSort = sortColumns{
	"sale_date":     "sale_date",
	"customer_name": "customer_name",
	"status":        "status",
	"total_revenue": "total_revenue",
	"profit":        "profit",
	"created_at":    "created_at",
}

var customerSort = sortColumns{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

var priceHistorySort = sortColumns{
	"changed_at": "changed_at",
}

var ledgerSort = sortColumns{
	"created_at":       "created_at",
	"transaction_type": "transaction_type",
	"quantity_change":  "quantity_change",
}

// applyPaging orders by the resolved column with id as a tiebreaker, so
// pages stay stable when many rows share a date, then applies the page window
func applyPaging(query *gorm.DB, filter shared.Filter, cols sortColumns, defaultField string) *gorm.DB {
	desc := descending(filter.OrderDir)
	query = query.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: cols.column(filter.OrderBy, defaultField)}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}})
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
