package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
	"github.com/stockpos/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements invoice.InvoiceRepository using GORM.
// Invoices load and save as whole aggregates: header and lines together.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID loads an invoice with its lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id valueobject.InvoiceID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns invoices matching the filter, newest first
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", filter.CustomerID.Value())
	}
	if filter.From != nil {
		query = query.Where("invoice_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("invoice_date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceModel
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("Lines").
		Order("invoice_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	invoices, err := toDomainInvoices(rows)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// FindCommittedInWindow returns all non-draft, non-cancelled invoices whose
// invoice date falls inside [from, to)
func (r *GormInvoiceRepository) FindCommittedInWindow(ctx context.Context, from, to time.Time) ([]invoice.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status NOT IN ?", []string{
			string(invoice.StatusDraft),
			string(invoice.StatusCancelled),
		}).
		Where("invoice_date >= ? AND invoice_date < ?", from, to).
		Order("invoice_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toDomainInvoices(rows)
}

// NextNumber reserves the next sequential invoice number for a prefix.
// The counter row is locked for the duration of the surrounding transaction
// so concurrent commits cannot hand out the same number.
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, prefix string) (int64, error) {
	db := r.db.WithContext(ctx)

	var seq models.InvoiceSequenceModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "prefix = ?", prefix).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.InvoiceSequenceModel{Prefix: prefix, LastNumber: 1}
		if err := db.Create(&seq).Error; err != nil {
			return 0, err
		}
		return seq.LastNumber, nil
	}
	if err != nil {
		return 0, err
	}

	seq.LastNumber++
	if err := db.Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastNumber, nil
}

// Save creates or updates an invoice and its lines as one unit. Lines are
// replaced wholesale; the aggregate is the source of truth for them.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	lines := model.Lines
	model.Lines = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InvoiceLineModel{}, "invoice_id = ?", model.ID).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].InvoiceID = model.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	inv.ID = model.ID
	inv.CreatedAt = model.CreatedAt
	inv.UpdatedAt = model.UpdatedAt
	return nil
}

func toDomainInvoices(rows []models.InvoiceModel) ([]invoice.Invoice, error) {
	invoices := make([]invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

var _ invoice.InvoiceRepository = (*GormInvoiceRepository)(nil)
