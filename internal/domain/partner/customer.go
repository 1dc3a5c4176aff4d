package partner

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
)

// Customer is a buyer that sales can be linked to. Sales keep their own
// typed-in name and phone, so a customer is optional on every sale.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	shared.Filter
	// Search matches name, phone or email, case-insensitively
	Search string
}

// CustomerRepository persists Customer aggregates
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, int64, error)
	// CountSales returns how many sales are linked to each customer
	CountSales(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]int64, error)
	// Save fails with CONCURRENCY_CONFLICT when the stored version moved on
	Save(ctx context.Context, customer *Customer) error
	// Delete removes the customer and unlinks its sales
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewCustomer creates a customer with contact details
func NewCustomer(name, phone, email, address, notes string) (*Customer, error) {
	c := &Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := c.apply(name, phone, email, address, notes); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer's details
func (c *Customer) Update(name, phone, email, address, notes string) error {
	if err := c.apply(name, phone, email, address, notes); err != nil {
		return err
	}
	c.MarkModified()
	return nil
}

func (c *Customer) apply(name, phone, email, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewInvalidInputError("customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewInvalidInputError("customer name cannot exceed 200 characters")
	}
	phone = strings.TrimSpace(phone)
	if len(phone) > 20 {
		return shared.NewInvalidInputError("phone cannot exceed 20 characters")
	}
	email = strings.TrimSpace(email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email || len(email) > 254 {
			return shared.NewInvalidInputError("invalid email %q", email)
		}
	}
	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = strings.TrimSpace(address)
	c.Notes = strings.TrimSpace(notes)
	return nil
}
