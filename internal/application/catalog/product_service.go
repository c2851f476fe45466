package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations. Stock is
// deliberately absent from its surface: every stock change goes through the
// inventory service so the movement ledger stays complete.
type ProductService struct {
	productRepo catalog.ProductRepository
	publisher   shared.EventPublisher
	now         func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, publisher shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	name, err := valueobject.NewProductName(req.Name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := catalog.NewProduct(name, now)

	if req.Barcode != "" {
		barcode, err := valueobject.NewBarcode(req.Barcode)
		if err != nil {
			return nil, err
		}
		if err := s.checkBarcodeFree(ctx, barcode); err != nil {
			return nil, err
		}
		product = product.SetBarcode(&barcode, now)
	}

	if req.CategoryID != nil {
		categoryID, err := valueobject.NewCategoryID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		product = product.SetCategory(&categoryID, now)
	}

	if req.Price != nil || req.CostPrice != nil {
		price, costPrice, err := toMoneyPair(req.Price, req.CostPrice)
		if err != nil {
			return nil, err
		}
		product, err = product.UpdatePricing(price, costPrice, now)
		if err != nil {
			return nil, err
		}
	}

	if req.MinStockLevel != nil || req.MaxStockLevel != nil {
		min, max, err := toQuantityPair(req.MinStockLevel, req.MaxStockLevel)
		if err != nil {
			return nil, err
		}
		product, err = product.SetStockLevels(min, max, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, &product); err != nil {
		return nil, err
	}
	s.publish(ctx, &product)

	response := ToProductResponse(&product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by its barcode, the point-of-sale hot path
func (s *ProductService) GetByBarcode(ctx context.Context, raw string) (*ProductResponse, error) {
	barcode, err := valueobject.NewBarcode(raw)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, total, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		ActiveOnly:  filter.ActiveOnly,
		NeedRestock: filter.NeedRestock,
		Search:      filter.Search,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product's descriptive and pricing data
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	loaded, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	product := *loaded
	now := s.now()

	if req.Name != nil {
		name, err := valueobject.NewProductName(*req.Name)
		if err != nil {
			return nil, err
		}
		product = product.Rename(name, now)
	}

	if req.Barcode != nil {
		if *req.Barcode == "" {
			product = product.SetBarcode(nil, now)
		} else {
			barcode, err := valueobject.NewBarcode(*req.Barcode)
			if err != nil {
				return nil, err
			}
			if product.Barcode == nil || product.Barcode.Value() != barcode.Value() {
				if err := s.checkBarcodeFree(ctx, barcode); err != nil {
					return nil, err
				}
			}
			product = product.SetBarcode(&barcode, now)
		}
	}

	if req.CategoryID != nil {
		categoryID, err := valueobject.NewCategoryID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		product = product.SetCategory(&categoryID, now)
	}

	if req.Price != nil || req.CostPrice != nil {
		price := product.Price
		costPrice := product.CostPrice
		if req.Price != nil {
			m := valueobject.NewMoney(*req.Price)
			price = &m
		}
		if req.CostPrice != nil {
			m := valueobject.NewMoney(*req.CostPrice)
			costPrice = &m
		}
		product, err = product.UpdatePricing(price, costPrice, now)
		if err != nil {
			return nil, err
		}
	}

	if req.MinStockLevel != nil || req.MaxStockLevel != nil {
		min := product.MinStockLevel
		max := product.MaxStockLevel
		if req.MinStockLevel != nil {
			q, err := valueobject.NewQuantity(*req.MinStockLevel)
			if err != nil {
				return nil, err
			}
			min = &q
		}
		if req.MaxStockLevel != nil {
			q, err := valueobject.NewQuantity(*req.MaxStockLevel)
			if err != nil {
				return nil, err
			}
			max = &q
		}
		product, err = product.SetStockLevels(min, max, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, &product); err != nil {
		return nil, err
	}
	s.publish(ctx, &product)

	response := ToProductResponse(&product)
	return &response, nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, id int64) (*ProductResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, id int64) (*ProductResponse, error) {
	return s.setActive(ctx, id, false)
}

// Delete removes a product from the catalog. Products that still have stock
// on hand keep their ledger history and cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !product.Stock.IsZero() {
		return shared.NewDomainError("STOCK_ON_HAND", "Cannot delete a product with stock on hand")
	}
	return s.productRepo.Delete(ctx, product.ProductIDRef())
}

func (s *ProductService) setActive(ctx context.Context, id int64, active bool) (*ProductResponse, error) {
	loaded, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var product catalog.Product
	now := s.now()
	if active {
		product, err = loaded.Activate(now)
	} else {
		product, err = loaded.Deactivate(now)
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, &product); err != nil {
		return nil, err
	}
	s.publish(ctx, &product)

	response := ToProductResponse(&product)
	return &response, nil
}

func (s *ProductService) load(ctx context.Context, id int64) (*catalog.Product, error) {
	productID, err := valueobject.NewProductID(id)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, productID)
}

func (s *ProductService) checkBarcodeFree(ctx context.Context, barcode valueobject.Barcode) error {
	_, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err == nil {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// publish delivers drained events on a best-effort basis after a successful
// save; event delivery never fails the operation
func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	events := product.DomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}

func toMoneyPair(price, costPrice *int64) (*valueobject.Money, *valueobject.Money, error) {
	var p, c *valueobject.Money
	if price != nil {
		m := valueobject.NewMoney(*price)
		p = &m
	}
	if costPrice != nil {
		m := valueobject.NewMoney(*costPrice)
		c = &m
	}
	return p, c, nil
}

func toQuantityPair(min, max *int64) (*valueobject.Quantity, *valueobject.Quantity, error) {
	var lo, hi *valueobject.Quantity
	if min != nil {
		q, err := valueobject.NewQuantity(*min)
		if err != nil {
			return nil, nil, err
		}
		lo = &q
	}
	if max != nil {
		q, err := valueobject.NewQuantity(*max)
		if err != nil {
			return nil, nil, err
		}
		hi = &q
	}
	return lo, hi, nil
}
