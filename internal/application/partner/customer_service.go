package partner

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/partner"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, &customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(&customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	customers, total, err := s.customerRepo.FindAll(ctx, partner.CustomerFilter{
		ActiveOnly: filter.ActiveOnly,
		Search:     filter.Search,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Update changes a customer's name or phone
func (s *CustomerService) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	loaded, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	customer := *loaded
	now := s.now()

	if req.Name != nil {
		customer, err = customer.Rename(*req.Name, now)
		if err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		customer, err = customer.UpdatePhone(*req.Phone, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, &customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(&customer)
	return &response, nil
}

// Activate reinstates a customer
func (s *CustomerService) Activate(ctx context.Context, id int64) (*CustomerResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate retires a customer; their invoice history stays queryable
func (s *CustomerService) Deactivate(ctx context.Context, id int64) (*CustomerResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *CustomerService) setActive(ctx context.Context, id int64, active bool) (*CustomerResponse, error) {
	loaded, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var customer partner.Customer
	now := s.now()
	if active {
		customer, err = loaded.Activate(now)
	} else {
		customer, err = loaded.Deactivate(now)
	}
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, &customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(&customer)
	return &response, nil
}

func (s *CustomerService) load(ctx context.Context, id int64) (*partner.Customer, error) {
	customerID, err := valueobject.NewCustomerID(id)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, customerID)
}
