package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// SaleRepository defines sale persistence operations. Sale creation updates
// the vehicle status in the same transaction, so the repository exposes the
// vehicle status write alongside the sale writes.
type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	Update(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindByIDFull(ctx context.Context, id uint) (*model.Sale, error)
	List(ctx context.Context, params ListParams, status model.SaleStatus) ([]model.Sale, int64, error)
	UpdateVehicleStatus(ctx context.Context, vehicleID uint, status model.VehicleStatus) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo SaleRepository) error) error
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository builds a GORM-backed repository.
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Omit("Vehicle", "Client", "Seller", "FinancingEntity", "Invoice").
		Create(sale).Error
}

func (r *saleRepository) Update(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Omit("Vehicle", "Client", "Seller", "FinancingEntity", "Invoice").
		Save(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByIDFull(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).
		Preload("Vehicle.Model.Brand").
		Preload("Client.Contact").
		Preload("Seller.Contact").
		Preload("FinancingEntity.Contact").
		Preload("Invoice").
		Where("id = ?", id).First(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, params ListParams, status model.SaleStatus) ([]model.Sale, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	if err := q.Preload("Vehicle").Preload("Client.Contact").Preload("Seller.Contact").
		Order("sold_at DESC").
		Limit(params.Limit).Offset(params.Offset()).Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *saleRepository) UpdateVehicleStatus(ctx context.Context, vehicleID uint, status model.VehicleStatus) error {
	return r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", vehicleID).
		Update("status", status).Error
}

// WithTransaction executes fn within a database transaction.
func (r *saleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo SaleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &saleRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
