package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// VehicleFilter narrows vehicle listings beyond the shared ListParams.
type VehicleFilter struct {
	Status             model.VehicleStatus
	BrandID            uint
	ModelID            uint
	Year               int
	ColorID            uint
	FuelTypeID         uint
	TransmissionTypeID uint
}

// VehicleRepository defines vehicle persistence operations, including the
// acquisition and feature-join rows that live and die with the vehicle.
// WithTransaction hands the caller a repository bound to one transaction;
// every write inside the closure commits or rolls back as a unit.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id uint) (*model.Vehicle, error)
	FindByIDFull(ctx context.Context, id uint) (*model.Vehicle, error)
	List(ctx context.Context, params ListParams, filter VehicleFilter) ([]model.Vehicle, int64, error)
	// Acquisition rows
	CreateAcquisition(ctx context.Context, acq *model.Acquisition) error
	UpdateAcquisition(ctx context.Context, acq *model.Acquisition) error
	FindAcquisitionByVehicleID(ctx context.Context, vehicleID uint) (*model.Acquisition, error)
	// Feature join rows
	ListFeatureRows(ctx context.Context, vehicleID uint) ([]model.VehicleFeature, error)
	CreateFeatureRow(ctx context.Context, row *model.VehicleFeature) error
	UpdateFeatureRowValue(ctx context.Context, vehicleID, featureID uint, value *string) error
	DeleteFeatureRow(ctx context.Context, vehicleID, featureID uint) error
	// Transaction scope
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VehicleRepository) error) error
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Omit("Model", "Color", "TransmissionType", "FuelType", "Acquisition", "Features").
		Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Omit("Model", "Color", "TransmissionType", "FuelType", "Acquisition", "Features").
		Save(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByIDFull loads the vehicle with every association the API returns.
func (r *vehicleRepository) FindByIDFull(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Model.Brand").
		Preload("Color").
		Preload("TransmissionType").
		Preload("FuelType").
		Preload("Acquisition").
		Preload("Features.Feature").
		Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, params ListParams, filter VehicleFilter) ([]model.Vehicle, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Joins("JOIN vehicle_models ON vehicle_models.id = vehicles.model_id").
		Joins("JOIN brands ON brands.id = vehicle_models.brand_id")

	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where(
			"vehicles.vin LIKE ? OR vehicles.engine_number LIKE ? OR vehicles.chassis_number LIKE ? OR vehicle_models.name LIKE ? OR brands.name LIKE ?",
			term, term, term, term, term,
		)
	}
	if filter.Status != "" {
		q = q.Where("vehicles.status = ?", filter.Status)
	}
	if filter.ModelID != 0 {
		q = q.Where("vehicles.model_id = ?", filter.ModelID)
	} else if filter.BrandID != 0 {
		q = q.Where("vehicle_models.brand_id = ?", filter.BrandID)
	}
	if filter.Year != 0 {
		q = q.Where("vehicles.year = ?", filter.Year)
	}
	if filter.ColorID != 0 {
		q = q.Where("vehicles.color_id = ?", filter.ColorID)
	}
	if filter.FuelTypeID != 0 {
		q = q.Where("vehicles.fuel_type_id = ?", filter.FuelTypeID)
	}
	if filter.TransmissionTypeID != 0 {
		q = q.Where("vehicles.transmission_type_id = ?", filter.TransmissionTypeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []model.Vehicle
	if err := q.Preload("Model.Brand").
		Preload("Color").
		Preload("TransmissionType").
		Preload("FuelType").
		Preload("Acquisition").
		Preload("Features.Feature").
		Order("vehicles.registered_at DESC").
		Limit(params.Limit).Offset(params.Offset()).
		Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *vehicleRepository) CreateAcquisition(ctx context.Context, acq *model.Acquisition) error {
	return r.db.WithContext(ctx).Omit("Supplier", "TradeInClient", "RegisteredBy").Create(acq).Error
}

func (r *vehicleRepository) UpdateAcquisition(ctx context.Context, acq *model.Acquisition) error {
	return r.db.WithContext(ctx).Omit("Supplier", "TradeInClient", "RegisteredBy").Save(acq).Error
}

func (r *vehicleRepository) FindAcquisitionByVehicleID(ctx context.Context, vehicleID uint) (*model.Acquisition, error) {
	var acq model.Acquisition
	if err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).First(&acq).Error; err != nil {
		return nil, err
	}
	return &acq, nil
}

func (r *vehicleRepository) ListFeatureRows(ctx context.Context, vehicleID uint) ([]model.VehicleFeature, error) {
	var rows []model.VehicleFeature
	if err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *vehicleRepository) CreateFeatureRow(ctx context.Context, row *model.VehicleFeature) error {
	return r.db.WithContext(ctx).Omit("Feature").Create(row).Error
}

func (r *vehicleRepository) UpdateFeatureRowValue(ctx context.Context, vehicleID, featureID uint, value *string) error {
	return r.db.WithContext(ctx).Model(&model.VehicleFeature{}).
		Where("vehicle_id = ? AND feature_id = ?", vehicleID, featureID).
		Update("value", value).Error
}

func (r *vehicleRepository) DeleteFeatureRow(ctx context.Context, vehicleID, featureID uint) error {
	return r.db.WithContext(ctx).
		Where("vehicle_id = ? AND feature_id = ?", vehicleID, featureID).
		Delete(&model.VehicleFeature{}).Error
}

// WithTransaction executes fn within a database transaction. The repository
// passed to fn shares the transaction handle; any error rolls everything back.
func (r *vehicleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VehicleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &vehicleRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
