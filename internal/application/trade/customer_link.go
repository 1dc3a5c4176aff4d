package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/partner"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
)

// CustomerDirectory looks up the customers a sale can be linked to
type CustomerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error)
}

// LinkCustomer links sale to the customer named by customerID. An unknown
// customer is INVALID_INPUT. Without a directory the ID is linked as given
// and the foreign key has the last word.
func LinkCustomer(ctx context.Context, customers CustomerDirectory, sale *trade.Sale, customerID *uuid.UUID) error {
	if customerID == nil {
		return nil
	}
	if customers == nil {
		sale.LinkCustomer(*customerID, "", "")
		return nil
	}
	customer, err := customers.FindByID(ctx, *customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewInvalidInputError("customer %s does not exist", customerID.String())
		}
		return err
	}
	sale.LinkCustomer(customer.ID, customer.Name, customer.Phone)
	return nil
}
