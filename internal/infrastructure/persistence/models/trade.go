package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/trade"
)

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	AggregateModel
	SupplierName         string              `gorm:"type:varchar(200);not null"`
	OrderDate            time.Time           `gorm:"not null;index"`
	DeliveryDate         *time.Time          `gorm:"index"`
	Status               string              `gorm:"type:varchar(20);not null;default:'pending';index"`
	EstimatedShippingUSD decimal.Decimal     `gorm:"column:estimated_shipping_usd;type:decimal(18,4);not null;default:0"`
	EstimatedTaxesUSD    decimal.Decimal     `gorm:"column:estimated_taxes_usd;type:decimal(18,4);not null;default:0"`
	RealShippingUSD      *decimal.Decimal    `gorm:"column:real_shipping_usd;type:decimal(18,4)"`
	RealTaxesUSD         *decimal.Decimal    `gorm:"column:real_taxes_usd;type:decimal(18,4)"`
	ExchangeRate         decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Notes                string              `gorm:"type:text"`
	Items                []PurchaseItemModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	p := &trade.Purchase{
		SupplierName:         m.SupplierName,
		OrderDate:            m.OrderDate,
		DeliveryDate:         m.DeliveryDate,
		Status:               trade.PurchaseStatus(m.Status),
		EstimatedShippingUSD: m.EstimatedShippingUSD,
		EstimatedTaxesUSD:    m.EstimatedTaxesUSD,
		RealShippingUSD:      m.RealShippingUSD,
		RealTaxesUSD:         m.RealTaxesUSD,
		ExchangeRate:         m.ExchangeRate,
		Notes:                m.Notes,
		Items:                make([]trade.PurchaseItem, len(m.Items)),
	}
	p.BaseAggregateRoot = m.aggregate()
	for i := range m.Items {
		p.Items[i] = *m.Items[i].ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Purchase.
func (m *PurchaseModel) FromDomain(p *trade.Purchase) {
	m.setAggregate(p.BaseAggregateRoot)
	m.SupplierName = p.SupplierName
	m.OrderDate = p.OrderDate
	m.DeliveryDate = p.DeliveryDate
	m.Status = string(p.Status)
	m.EstimatedShippingUSD = p.EstimatedShippingUSD
	m.EstimatedTaxesUSD = p.EstimatedTaxesUSD
	m.RealShippingUSD = p.RealShippingUSD
	m.RealTaxesUSD = p.RealTaxesUSD
	m.ExchangeRate = p.ExchangeRate
	m.Notes = p.Notes
	m.Items = make([]PurchaseItemModel, len(p.Items))
	for i := range p.Items {
		m.Items[i] = *PurchaseItemModelFromDomain(&p.Items[i])
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// PurchaseItemModel is the persistence model for a purchase line.
type PurchaseItemModel struct {
	BaseModel
	PurchaseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCostUSD       decimal.Decimal `gorm:"column:unit_cost_usd;type:decimal(18,4);not null"`
	DiscountUSD       decimal.Decimal `gorm:"column:discount_usd;type:decimal(18,4);not null;default:0"`
	LandedUnitCostUSD decimal.Decimal `gorm:"column:landed_unit_cost_usd;type:decimal(18,4);not null;default:0"`
	UnitCostGTQ       decimal.Decimal `gorm:"column:unit_cost_gtq;type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the persistence model to a domain PurchaseItem.
func (m *PurchaseItemModel) ToDomain() *trade.PurchaseItem {
	return &trade.PurchaseItem{
		BaseEntity:        m.entity(),
		PurchaseID:        m.PurchaseID,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		UnitCostUSD:       m.UnitCostUSD,
		DiscountUSD:       m.DiscountUSD,
		LandedUnitCostUSD: m.LandedUnitCostUSD,
		UnitCostGTQ:       m.UnitCostGTQ,
	}
}

// PurchaseItemModelFromDomain creates a new persistence model from a domain PurchaseItem.
func PurchaseItemModelFromDomain(i *trade.PurchaseItem) *PurchaseItemModel {
	m := &PurchaseItemModel{
		PurchaseID:        i.PurchaseID,
		ProductID:         i.ProductID,
		Quantity:          i.Quantity,
		UnitCostUSD:       i.UnitCostUSD,
		DiscountUSD:       i.DiscountUSD,
		LandedUnitCostUSD: i.LandedUnitCostUSD,
		UnitCostGTQ:       i.UnitCostGTQ,
	}
	m.setEntity(i.BaseEntity)
	return m
}

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName  string          `gorm:"type:varchar(200)"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	SaleDate      time.Time       `gorm:"not null;index"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes         string          `gorm:"type:text"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Profit        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	Items         []SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	s := &trade.Sale{
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		SaleDate:      m.SaleDate,
		Status:        trade.SaleStatus(m.Status),
		Notes:         m.Notes,
		TotalRevenue:  m.TotalRevenue,
		TotalCost:     m.TotalCost,
		Profit:        m.Profit,
		CompletedAt:   m.CompletedAt,
		CancelledAt:   m.CancelledAt,
		Items:         make([]trade.SaleItem, len(m.Items)),
	}
	s.BaseAggregateRoot = m.aggregate()
	for i := range m.Items {
		s.Items[i] = *m.Items[i].ToDomain()
	}
	return s
}

// FromDomain populates the header columns from a domain Sale. Items are
// written separately.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.setAggregate(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.CustomerName = s.CustomerName
	m.CustomerPhone = s.CustomerPhone
	m.SaleDate = s.SaleDate
	m.Status = string(s.Status)
	m.Notes = s.Notes
	m.TotalRevenue = s.TotalRevenue
	m.TotalCost = s.TotalCost
	m.Profit = s.Profit
	m.CompletedAt = s.CompletedAt
	m.CancelledAt = s.CancelledAt
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleItemModel is the persistence model for a costed sale line.
type SaleItemModel struct {
	BaseModel
	SaleID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	UnitPriceGTQ decimal.Decimal      `gorm:"column:unit_price_gtq;type:decimal(18,2);not null"`
	UnitCostGTQ  decimal.Decimal      `gorm:"column:unit_cost_gtq;type:decimal(18,4);not null"`
	TotalPrice   decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalCost    decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Profit       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Consumptions []SaleItemLayerModel `gorm:"foreignKey:SaleItemID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem.
func (m *SaleItemModel) ToDomain() *trade.SaleItem {
	item := &trade.SaleItem{
		BaseEntity:   m.entity(),
		SaleID:       m.SaleID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		UnitPriceGTQ: m.UnitPriceGTQ,
		UnitCostGTQ:  m.UnitCostGTQ,
		TotalPrice:   m.TotalPrice,
		TotalCost:    m.TotalCost,
		Profit:       m.Profit,
		Consumptions: make([]inventory.LayerConsumption, len(m.Consumptions)),
	}
	for i, c := range m.Consumptions {
		item.Consumptions[i] = c.ToDomain()
	}
	return item
}

// SaleItemModelFromDomain creates a new persistence model from a domain SaleItem.
func SaleItemModelFromDomain(i *trade.SaleItem) *SaleItemModel {
	m := &SaleItemModel{
		SaleID:       i.SaleID,
		ProductID:    i.ProductID,
		Quantity:     i.Quantity,
		UnitPriceGTQ: i.UnitPriceGTQ,
		UnitCostGTQ:  i.UnitCostGTQ,
		TotalPrice:   i.TotalPrice,
		TotalCost:    i.TotalCost,
		Profit:       i.Profit,
		Consumptions: make([]SaleItemLayerModel, len(i.Consumptions)),
	}
	m.setEntity(i.BaseEntity)
	for idx, c := range i.Consumptions {
		m.Consumptions[idx] = SaleItemLayerModel{
			SaleItemID:  i.ID,
			CostLayerID: c.LayerID,
			LayerSeq:    c.Seq,
			Quantity:    c.Quantity,
			UnitCostGTQ: c.UnitCostGTQ,
		}
	}
	return m
}

// SaleItemLayerModel records how much of one cost layer a sale item consumed
type SaleItemLayerModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	SaleItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostLayerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LayerSeq    int64           `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCostGTQ decimal.Decimal `gorm:"column:unit_cost_gtq;type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemLayerModel) TableName() string {
	return "sale_item_layers"
}

// ToDomain converts the persistence model to a domain LayerConsumption.
func (m SaleItemLayerModel) ToDomain() inventory.LayerConsumption {
	return inventory.LayerConsumption{
		LayerID:     m.CostLayerID,
		Seq:         m.LayerSeq,
		Quantity:    m.Quantity,
		UnitCostGTQ: m.UnitCostGTQ,
	}
}
