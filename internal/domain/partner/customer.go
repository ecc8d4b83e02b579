package partner

import (
	"strings"
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Customer represents a shop customer. The CNIC (national identity number) is
// unique when present; walk-in customers may not have one recorded.
type Customer struct {
	shared.BaseEntity
	Name    string  `gorm:"size:200;not null" json:"name"`
	CNIC    *string `gorm:"size:20;uniqueIndex" json:"cnic,omitempty"`
	Phone   string  `gorm:"size:30" json:"phone"`
	Address string  `gorm:"size:500" json:"address"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, cnic, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	c := &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
	}
	if cnic = strings.TrimSpace(cnic); cnic != "" {
		c.CNIC = &cnic
	}
	return c, nil
}

// Update applies editable fields
func (c *Customer) Update(name, cnic, phone, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	if cnic = strings.TrimSpace(cnic); cnic != "" {
		c.CNIC = &cnic
	} else {
		c.CNIC = nil
	}
	c.UpdatedAt = time.Now()
	return nil
}
