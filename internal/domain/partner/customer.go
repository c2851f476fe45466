package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{5,20}$`)

// Customer is the party an invoice can be issued to. Only identity and
// contact data live here; everything financial about a customer is derived
// from their invoice history by the report rollups.
type Customer struct {
	shared.BaseEntity
	Name   string
	Phone  string
	Active bool
}

// NewCustomer creates a new active customer
func NewCustomer(name, phone string, now time.Time) (Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return Customer{}, err
	}
	if err := validatePhone(phone); err != nil {
		return Customer{}, err
	}

	return Customer{
		BaseEntity: shared.NewBaseEntity(now),
		Name:       strings.TrimSpace(name),
		Phone:      strings.TrimSpace(phone),
		Active:     true,
	}, nil
}

// CustomerIDRef returns the customer's identifier as a typed reference.
// Zero for an unpersisted customer.
func (c Customer) CustomerIDRef() valueobject.CustomerID {
	if !c.IsPersisted() {
		return valueobject.CustomerID{}
	}
	id, _ := valueobject.NewCustomerID(c.ID)
	return id
}

// Rename replaces the display name
func (c Customer) Rename(name string, now time.Time) (Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return Customer{}, err
	}
	c.Name = strings.TrimSpace(name)
	c.BaseEntity = c.Touched(now)
	return c, nil
}

// UpdatePhone replaces the contact phone
func (c Customer) UpdatePhone(phone string, now time.Time) (Customer, error) {
	if err := validatePhone(phone); err != nil {
		return Customer{}, err
	}
	c.Phone = strings.TrimSpace(phone)
	c.BaseEntity = c.Touched(now)
	return c, nil
}

// Deactivate retires the customer; their invoice history is untouched
func (c Customer) Deactivate(now time.Time) (Customer, error) {
	if !c.Active {
		return Customer{}, shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.Active = false
	c.BaseEntity = c.Touched(now)
	return c, nil
}

// Activate reinstates the customer
func (c Customer) Activate(now time.Time) (Customer, error) {
	if c.Active {
		return Customer{}, shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.Active = true
	c.BaseEntity = c.Touched(now)
	return c, nil
}

func validateCustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewValidationError("name", "cannot be blank")
	}
	if len(trimmed) > 200 {
		return shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return nil
	}
	if !phonePattern.MatchString(trimmed) {
		return shared.NewValidationError("phone", "must be 5-20 digits, +, -, () or spaces")
	}
	return nil
}
