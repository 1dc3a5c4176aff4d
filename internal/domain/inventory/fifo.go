package inventory

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/shared"
)

// LayerConsumption is one line of a FIFO breakdown
type LayerConsumption struct {
	LayerID     uuid.UUID       `json:"layer_id"`
	Seq         int64           `json:"seq"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCostGTQ decimal.Decimal `json:"unit_cost_gtq"`
}

// Cost returns Quantity * UnitCostGTQ
func (c LayerConsumption) Cost() decimal.Decimal {
	return c.Quantity.Mul(c.UnitCostGTQ)
}

// FIFOResult is the outcome of consuming layers for one request
type FIFOResult struct {
	Quantity  decimal.Decimal
	TotalCost decimal.Decimal
	// UnitCost is the weighted average sum(q_i*c_i)/quantity
	UnitCost  decimal.Decimal
	Breakdown []LayerConsumption
	// Touched are the layers whose QuantityRemaining changed, in consumption order
	Touched []*CostLayer
}

// SortFIFO orders layers by Seq, then by ID for layers sharing a Seq
func SortFIFO(layers []*CostLayer) {
	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].Seq != layers[j].Seq {
			return layers[i].Seq < layers[j].Seq
		}
		return bytes.Compare(layers[i].ID[:], layers[j].ID[:]) < 0
	})
}

// AvailableQuantity sums QuantityRemaining over layers
func AvailableQuantity(layers []*CostLayer) decimal.Decimal {
	total := decimal.Zero
	for _, l := range layers {
		total = total.Add(l.QuantityRemaining)
	}
	return total
}

// ConsumeFIFO takes quantity from layers oldest first, exhausting each layer
// before moving to the next. Sufficiency is checked before any layer is touched,
// so on error every layer is left unchanged.
func ConsumeFIFO(productID uuid.UUID, layers []*CostLayer, quantity decimal.Decimal) (FIFOResult, error) {
	if !quantity.IsPositive() {
		return FIFOResult{}, shared.NewInvalidInputError("quantity must be greater than zero, got %s", quantity)
	}

	available := AvailableQuantity(layers)
	if available.LessThan(quantity) {
		return FIFOResult{}, shared.NewInsufficientStockError(productID, quantity, available)
	}

	ordered := make([]*CostLayer, len(layers))
	copy(ordered, layers)
	SortFIFO(ordered)

	result := FIFOResult{
		Quantity:  quantity,
		TotalCost: decimal.Zero,
		Breakdown: make([]LayerConsumption, 0),
		Touched:   make([]*CostLayer, 0),
	}

	remaining := quantity
	for _, layer := range ordered {
		if remaining.IsZero() {
			break
		}
		if layer.IsExhausted() {
			continue
		}
		taken := decimal.Min(remaining, layer.QuantityRemaining)
		if err := layer.take(taken); err != nil {
			return FIFOResult{}, err
		}
		line := LayerConsumption{
			LayerID:     layer.ID,
			Seq:         layer.Seq,
			Quantity:    taken,
			UnitCostGTQ: layer.UnitCostGTQ,
		}
		result.Breakdown = append(result.Breakdown, line)
		result.Touched = append(result.Touched, layer)
		result.TotalCost = result.TotalCost.Add(line.Cost())
		remaining = remaining.Sub(taken)
	}

	result.UnitCost = result.TotalCost.Div(quantity)
	return result, nil
}

// ReverseFIFO returns the breakdown in restoration order: newest layer first
func ReverseFIFO(breakdown []LayerConsumption) []LayerConsumption {
	out := make([]LayerConsumption, len(breakdown))
	copy(out, breakdown)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq > out[j].Seq
		}
		return bytes.Compare(out[i].LayerID[:], out[j].LayerID[:]) > 0
	})
	return out
}
