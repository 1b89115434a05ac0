package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// InvoiceRepository defines invoice persistence operations. Invoice creation
// flips the sale to Facturada in the same transaction.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	FindBySaleID(ctx context.Context, saleID uint) (*model.Invoice, error)
	FindByNumber(ctx context.Context, number string) (*model.Invoice, error)
	List(ctx context.Context, params ListParams, status model.InvoiceStatus) ([]model.Invoice, int64, error)
	UpdateSaleStatus(ctx context.Context, saleID uint, status model.SaleStatus) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo InvoiceRepository) error) error
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository builds a GORM-backed repository.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindBySaleID(ctx context.Context, saleID uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, params ListParams, status model.InvoiceStatus) ([]model.Invoice, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []model.Invoice
	if err := q.Order("issued_at DESC").
		Limit(params.Limit).Offset(params.Offset()).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) UpdateSaleStatus(ctx context.Context, saleID uint, status model.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("id = ?", saleID).
		Update("status", status).Error
}

// WithTransaction executes fn within a database transaction.
func (r *invoiceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo InvoiceRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &invoiceRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
