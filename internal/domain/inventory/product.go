package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// AggregateTypeProduct is the aggregate type reported on product events
const AggregateTypeProduct = "Product"

// costPlaces is the precision running averages are kept with
const costPlaces int32 = 4

// Product is the aggregate root owning a product's stock and cost figures.
// CurrentStock always equals the sum of QuantityRemaining over the product's
// cost layers, and InventoryValueGTQ the sum of QuantityRemaining*UnitCostGTQ.
// Both are changed only through ApplyReceipt, ApplyConsumption and ApplyRestore.
type Product struct {
	shared.BaseAggregateRoot
	SKU                 string
	Name                string
	Brand               string
	ProductType         string
	Unit                string
	Description         string
	CurrentStock        decimal.Decimal
	InventoryValueGTQ   decimal.Decimal
	AverageCostGTQ      decimal.Decimal
	MinStockLevel       decimal.Decimal
	CurrentPriceGTQ     decimal.Decimal
	LastPurchaseCostGTQ decimal.Decimal
	LastPurchaseDate    *time.Time

	priceChanges []PriceChange
}

// NewProduct creates a catalog product with no stock
func NewProduct(name, brand, productType string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewInvalidInputError("product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewInvalidInputError("product name cannot exceed 200 characters")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             strings.TrimSpace(brand),
		ProductType:       strings.TrimSpace(productType),
		Unit:              "unit",
		CurrentStock:      decimal.Zero,
		InventoryValueGTQ: decimal.Zero,
		AverageCostGTQ:    decimal.Zero,
		MinStockLevel:     decimal.Zero,
		CurrentPriceGTQ:   decimal.Zero,
	}, nil
}

// UpdateDetails replaces the descriptive catalog fields. Stock and cost
// figures are not touched.
func (p *Product) UpdateDetails(name, brand, productType, sku, unit, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewInvalidInputError("product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewInvalidInputError("product name cannot exceed 200 characters")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "unit"
	}
	p.Name = name
	p.Brand = strings.TrimSpace(brand)
	p.ProductType = strings.TrimSpace(productType)
	p.SKU = strings.TrimSpace(sku)
	p.Unit = unit
	p.Description = strings.TrimSpace(description)
	p.MarkModified()
	return nil
}

// SetMinStockLevel sets the low-stock threshold
func (p *Product) SetMinStockLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewInvalidInputError("min stock level cannot be negative")
	}
	p.MinStockLevel = level
	p.MarkModified()
	return nil
}

// SetCurrentPrice sets the list selling price in GTQ. Changing the price of
// a stored product queues a PriceChange that is saved with the product.
func (p *Product) SetCurrentPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewInvalidInputError("price cannot be negative")
	}
	if price.Equal(p.CurrentPriceGTQ) {
		return nil
	}
	if p.PersistedVersion() > 0 {
		p.priceChanges = append(p.priceChanges, PriceChange{
			ID:          uuid.New(),
			ProductID:   p.ID,
			OldPriceGTQ: p.CurrentPriceGTQ,
			NewPriceGTQ: price,
			ChangedAt:   time.Now(),
		})
	}
	p.CurrentPriceGTQ = price
	p.MarkModified()
	return nil
}

// PendingPriceChanges returns the price changes not yet saved
func (p *Product) PendingPriceChanges() []PriceChange {
	return p.priceChanges
}

// ClearPriceChanges drops the queued price changes once they are stored
func (p *Product) ClearPriceChanges() {
	p.priceChanges = nil
}

// ApplyReceipt books a newly appended cost layer of quantity units at unitCostGTQ.
// The average is updated incrementally:
// avg = (stock*avg + qty*cost) / (stock + qty).
func (p *Product) ApplyReceipt(quantity, unitCostGTQ decimal.Decimal, receivedAt time.Time) error {
	if err := p.applyIncrease(quantity, unitCostGTQ); err != nil {
		return err
	}
	p.LastPurchaseCostGTQ = unitCostGTQ
	at := receivedAt
	p.LastPurchaseDate = &at
	p.AddDomainEvent(NewStockReceivedEvent(p, quantity, unitCostGTQ))
	return nil
}

// ApplyAdjustmentIn books a manual stock increase at unitCostGTQ. Unlike a
// receipt it leaves the last purchase cost untouched.
func (p *Product) ApplyAdjustmentIn(quantity, unitCostGTQ decimal.Decimal) error {
	if err := p.applyIncrease(quantity, unitCostGTQ); err != nil {
		return err
	}
	p.AddDomainEvent(NewStockReceivedEvent(p, quantity, unitCostGTQ))
	return nil
}

// ApplyRestore books quantity units returned to an existing layer at unitCostGTQ
func (p *Product) ApplyRestore(quantity, unitCostGTQ decimal.Decimal) error {
	if err := p.applyIncrease(quantity, unitCostGTQ); err != nil {
		return err
	}
	p.AddDomainEvent(NewStockRestoredEvent(p, quantity, quantity.Mul(unitCostGTQ)))
	return nil
}

// ApplyConsumption removes quantity units whose FIFO cost was totalCostGTQ
func (p *Product) ApplyConsumption(quantity, totalCostGTQ decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if quantity.GreaterThan(p.CurrentStock) {
		return shared.NewInsufficientStockError(p.ID, quantity, p.CurrentStock)
	}
	wasLow := p.IsLowStock()

	p.CurrentStock = p.CurrentStock.Sub(quantity)
	p.InventoryValueGTQ = p.InventoryValueGTQ.Sub(totalCostGTQ)
	if p.CurrentStock.IsZero() || p.InventoryValueGTQ.IsNegative() {
		p.InventoryValueGTQ = decimal.Zero
	}
	p.recomputeAverage()
	p.MarkModified()

	p.AddDomainEvent(NewStockConsumedEvent(p, quantity, totalCostGTQ))
	if !wasLow && p.IsLowStock() {
		p.AddDomainEvent(NewLowStockDetectedEvent(p))
	}
	return nil
}

// IsLowStock reports whether stock is at or below the minimum level
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockLevel)
}

func (p *Product) applyIncrease(quantity, unitCostGTQ decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}
	if unitCostGTQ.IsNegative() {
		return shared.NewInvalidInputError("unit cost cannot be negative, got %s", unitCostGTQ)
	}
	p.CurrentStock = p.CurrentStock.Add(quantity)
	p.InventoryValueGTQ = p.InventoryValueGTQ.Add(quantity.Mul(unitCostGTQ))
	p.recomputeAverage()
	p.MarkModified()
	return nil
}

func (p *Product) recomputeAverage() {
	if p.CurrentStock.IsZero() {
		p.AverageCostGTQ = decimal.Zero
		return
	}
	p.AverageCostGTQ = p.InventoryValueGTQ.Div(p.CurrentStock).Round(costPlaces)
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	Search       string
	LowStockOnly bool
}

// ProductSnapshot is the eventually-consistent read model served to displays
type ProductSnapshot struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	AverageCostGTQ decimal.Decimal `json:"average_cost_gtq"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	IsLowStock     bool            `json:"is_low_stock"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Snapshot returns the read model of the product
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:             p.ID,
		Name:           p.Name,
		CurrentStock:   p.CurrentStock,
		AverageCostGTQ: p.AverageCostGTQ,
		MinStockLevel:  p.MinStockLevel,
		IsLowStock:     p.IsLowStock(),
		UpdatedAt:      p.UpdatedAt,
	}
}
