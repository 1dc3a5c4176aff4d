package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	SKU                 string          `gorm:"type:varchar(50);index"`
	Name                string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_products_name"`
	Brand               string          `gorm:"type:varchar(100)"`
	ProductType         string          `gorm:"type:varchar(50);index"`
	Unit                string          `gorm:"type:varchar(20);not null;default:'unit'"`
	Description         string          `gorm:"type:text"`
	CurrentStock        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InventoryValueGTQ   decimal.Decimal `gorm:"column:inventory_value_gtq;type:decimal(18,4);not null;default:0"`
	AverageCostGTQ      decimal.Decimal `gorm:"column:average_cost_gtq;type:decimal(18,4);not null;default:0"`
	MinStockLevel       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentPriceGTQ     decimal.Decimal `gorm:"column:current_price_gtq;type:decimal(18,2);not null;default:0"`
	LastPurchaseCostGTQ decimal.Decimal `gorm:"column:last_purchase_cost_gtq;type:decimal(18,2);not null;default:0"`
	LastPurchaseDate    *time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *inventory.Product {
	p := &inventory.Product{
		SKU:                 m.SKU,
		Name:                m.Name,
		Brand:               m.Brand,
		ProductType:         m.ProductType,
		Unit:                m.Unit,
		Description:         m.Description,
		CurrentStock:        m.CurrentStock,
		InventoryValueGTQ:   m.InventoryValueGTQ,
		AverageCostGTQ:      m.AverageCostGTQ,
		MinStockLevel:       m.MinStockLevel,
		CurrentPriceGTQ:     m.CurrentPriceGTQ,
		LastPurchaseCostGTQ: m.LastPurchaseCostGTQ,
		LastPurchaseDate:    m.LastPurchaseDate,
	}
	p.BaseAggregateRoot = m.aggregate()
	return p
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *inventory.Product) {
	m.setAggregate(p.BaseAggregateRoot)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Brand = p.Brand
	m.ProductType = p.ProductType
	m.Unit = p.Unit
	m.Description = p.Description
	m.CurrentStock = p.CurrentStock
	m.InventoryValueGTQ = p.InventoryValueGTQ
	m.AverageCostGTQ = p.AverageCostGTQ
	m.MinStockLevel = p.MinStockLevel
	m.CurrentPriceGTQ = p.CurrentPriceGTQ
	m.LastPurchaseCostGTQ = p.LastPurchaseCostGTQ
	m.LastPurchaseDate = p.LastPurchaseDate
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// PriceHistoryModel is one row of a product's list price history.
type PriceHistoryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_history_product_changed,priority:1"`
	OldPriceGTQ decimal.Decimal `gorm:"column:old_price_gtq;type:decimal(18,2);not null"`
	NewPriceGTQ decimal.Decimal `gorm:"column:new_price_gtq;type:decimal(18,2);not null"`
	ChangedAt   time.Time       `gorm:"not null;index:idx_price_history_product_changed,priority:2"`
}

// TableName returns the table name for GORM
func (PriceHistoryModel) TableName() string {
	return "price_history"
}

// ToDomain converts the row to a domain PriceChange.
func (m *PriceHistoryModel) ToDomain() inventory.PriceChange {
	return inventory.PriceChange{
		ID:          m.ID,
		ProductID:   m.ProductID,
		OldPriceGTQ: m.OldPriceGTQ,
		NewPriceGTQ: m.NewPriceGTQ,
		ChangedAt:   m.ChangedAt,
	}
}

// PriceHistoryModelsFromDomain creates rows for queued price changes.
func PriceHistoryModelsFromDomain(changes []inventory.PriceChange) []PriceHistoryModel {
	rows := make([]PriceHistoryModel, len(changes))
	for i, c := range changes {
		rows[i] = PriceHistoryModel{
			ID:          c.ID,
			ProductID:   c.ProductID,
			OldPriceGTQ: c.OldPriceGTQ,
			NewPriceGTQ: c.NewPriceGTQ,
			ChangedAt:   c.ChangedAt,
		}
	}
	return rows
}

// CostLayerModel is the persistence model for a FIFO cost layer.
// (product_id, seq) is unique and defines consumption order.
type CostLayerModel struct {
	BaseModel
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cost_layers_product_seq,priority:1"`
	Seq                 int64           `gorm:"not null;uniqueIndex:idx_cost_layers_product_seq,priority:2"`
	PurchaseItemID      *uuid.UUID      `gorm:"type:uuid;index"`
	UnitCostGTQ         decimal.Decimal `gorm:"column:unit_cost_gtq;type:decimal(18,2);not null"`
	BaseUnitCostUSD     decimal.Decimal `gorm:"column:base_unit_cost_usd;type:decimal(18,4);not null;default:0"`
	LogisticsPerUnitUSD decimal.Decimal `gorm:"column:logistics_per_unit_usd;type:decimal(18,4);not null;default:0"`
	OriginalQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityRemaining   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CostLayerModel) TableName() string {
	return "cost_layers"
}

// ToDomain converts the persistence model to a domain CostLayer.
func (m *CostLayerModel) ToDomain() *inventory.CostLayer {
	return &inventory.CostLayer{
		BaseEntity:          m.entity(),
		ProductID:           m.ProductID,
		Seq:                 m.Seq,
		PurchaseItemID:      m.PurchaseItemID,
		UnitCostGTQ:         m.UnitCostGTQ,
		BaseUnitCostUSD:     m.BaseUnitCostUSD,
		LogisticsPerUnitUSD: m.LogisticsPerUnitUSD,
		OriginalQuantity:    m.OriginalQuantity,
		QuantityRemaining:   m.QuantityRemaining,
	}
}

// CostLayerModelFromDomain creates a new persistence model from a domain CostLayer.
func CostLayerModelFromDomain(l *inventory.CostLayer) *CostLayerModel {
	m := &CostLayerModel{
		ProductID:           l.ProductID,
		Seq:                 l.Seq,
		PurchaseItemID:      l.PurchaseItemID,
		UnitCostGTQ:         l.UnitCostGTQ,
		BaseUnitCostUSD:     l.BaseUnitCostUSD,
		LogisticsPerUnitUSD: l.LogisticsPerUnitUSD,
		OriginalQuantity:    l.OriginalQuantity,
		QuantityRemaining:   l.QuantityRemaining,
	}
	m.setEntity(l.BaseEntity)
	return m
}

// InventoryTransactionModel is the persistence model for ledger entries.
// Rows are inserted once and never updated.
type InventoryTransactionModel struct {
	BaseModel
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_transactions_product_created,priority:1"`
	Kind           string          `gorm:"column:transaction_type;type:varchar(20);not null;index"`
	QuantityChange decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCostGTQ    decimal.Decimal `gorm:"column:unit_cost_gtq;type:decimal(18,4);not null;default:0"`
	ReferenceType  string          `gorm:"type:varchar(20);not null"`
	ReferenceID    *uuid.UUID      `gorm:"type:uuid;index"`
	Notes          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain InventoryTransaction.
func (m *InventoryTransactionModel) ToDomain() *inventory.InventoryTransaction {
	return &inventory.InventoryTransaction{
		BaseEntity:     m.entity(),
		ProductID:      m.ProductID,
		Kind:           inventory.TransactionKind(m.Kind),
		QuantityChange: m.QuantityChange,
		QuantityAfter:  m.QuantityAfter,
		UnitCostGTQ:    m.UnitCostGTQ,
		ReferenceType:  inventory.ReferenceType(m.ReferenceType),
		ReferenceID:    m.ReferenceID,
		Notes:          m.Notes,
	}
}

// InventoryTransactionModelFromDomain creates a new persistence model from a ledger entry.
func InventoryTransactionModelFromDomain(t *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{
		ProductID:      t.ProductID,
		Kind:           string(t.Kind),
		QuantityChange: t.QuantityChange,
		QuantityAfter:  t.QuantityAfter,
		UnitCostGTQ:    t.UnitCostGTQ,
		ReferenceType:  string(t.ReferenceType),
		ReferenceID:    t.ReferenceID,
		Notes:          t.Notes,
	}
	m.setEntity(t.BaseEntity)
	return m
}
