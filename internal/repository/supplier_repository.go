package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// SupplierRepository defines supplier persistence operations.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	Update(ctx context.Context, supplier *model.Supplier) error
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Supplier, error)
	List(ctx context.Context, params ListParams) ([]model.Supplier, int64, error)
	CountAcquisitions(ctx context.Context, id uint) (int64, error)
	CountFinancings(ctx context.Context, id uint) (int64, error)
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository builds a GORM-backed repository.
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).Preload("Contact").Where("id = ?", id).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Supplier, error) {
	var supplier model.Supplier
	q := r.db.WithContext(ctx).Where("contact_id = ?", contactID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) List(ctx context.Context, params ListParams) ([]model.Supplier, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Joins("JOIN contacts ON contacts.id = suppliers.contact_id")

	if params.Active != nil {
		q = q.Where("suppliers.active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where(
			"suppliers.supplier_type LIKE ? OR contacts.full_name LIKE ? OR contacts.company_name LIKE ? OR contacts.email LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []model.Supplier
	if err := q.Preload("Contact").Order("suppliers.id ASC").
		Limit(params.Limit).Offset(params.Offset()).Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (r *supplierRepository) CountAcquisitions(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Acquisition{}).Where("supplier_id = ?", id).Count(&count).Error
	return count, err
}

func (r *supplierRepository) CountFinancings(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("financing_entity_id = ?", id).Count(&count).Error
	return count, err
}
