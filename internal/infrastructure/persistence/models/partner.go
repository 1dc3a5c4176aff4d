package models

import (
	"github.com/supplements/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(20);index"`
	Email   string `gorm:"type:varchar(254)"`
	Address string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Name:    m.Name,
		Phone:   m.Phone,
		Email:   m.Email,
		Address: m.Address,
		Notes:   m.Notes,
	}
	c.BaseAggregateRoot = m.aggregate()
	return c
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Notes:   c.Notes,
	}
	m.setAggregate(c.BaseAggregateRoot)
	return m
}
