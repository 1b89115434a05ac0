package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// CatalogRepository groups the flat reference tables: brands, vehicle models,
// colors, fuel types, transmission types and optional features. These are
// pass-through rows with a uniqueness rule on name.
type CatalogRepository interface {
	// Brands
	CreateBrand(ctx context.Context, brand *model.Brand) error
	UpdateBrand(ctx context.Context, brand *model.Brand) error
	FindBrandByID(ctx context.Context, id uint) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	// Vehicle models
	CreateModel(ctx context.Context, m *model.VehicleModel) error
	UpdateModel(ctx context.Context, m *model.VehicleModel) error
	FindModelByID(ctx context.Context, id uint) (*model.VehicleModel, error)
	ListModels(ctx context.Context, brandID uint) ([]model.VehicleModel, error)
	ListModelIDsByBrand(ctx context.Context, brandID uint) ([]uint, error)
	// Colors
	CreateColor(ctx context.Context, color *model.Color) error
	FindColorByID(ctx context.Context, id uint) (*model.Color, error)
	ListColors(ctx context.Context) ([]model.Color, error)
	// Fuel types
	CreateFuelType(ctx context.Context, ft *model.FuelType) error
	FindFuelTypeByID(ctx context.Context, id uint) (*model.FuelType, error)
	ListFuelTypes(ctx context.Context) ([]model.FuelType, error)
	// Transmission types
	CreateTransmissionType(ctx context.Context, tt *model.TransmissionType) error
	FindTransmissionTypeByID(ctx context.Context, id uint) (*model.TransmissionType, error)
	ListTransmissionTypes(ctx context.Context) ([]model.TransmissionType, error)
	// Features
	CreateFeature(ctx context.Context, feature *model.Feature) error
	UpdateFeature(ctx context.Context, feature *model.Feature) error
	FindFeatureByID(ctx context.Context, id uint) (*model.Feature, error)
	ListFeatures(ctx context.Context) ([]model.Feature, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository builds a GORM-backed repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateBrand(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *catalogRepository) UpdateBrand(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *catalogRepository) FindBrandByID(ctx context.Context, id uint) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *catalogRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *catalogRepository) CreateModel(ctx context.Context, m *model.VehicleModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *catalogRepository) UpdateModel(ctx context.Context, m *model.VehicleModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogRepository) FindModelByID(ctx context.Context, id uint) (*model.VehicleModel, error) {
	var m model.VehicleModel
	if err := r.db.WithContext(ctx).Preload("Brand").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *catalogRepository) ListModels(ctx context.Context, brandID uint) ([]model.VehicleModel, error) {
	q := r.db.WithContext(ctx).Preload("Brand")
	if brandID != 0 {
		q = q.Where("brand_id = ?", brandID)
	}
	var models []model.VehicleModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *catalogRepository) ListModelIDsByBrand(ctx context.Context, brandID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.VehicleModel{}).
		Where("brand_id = ?", brandID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *catalogRepository) CreateColor(ctx context.Context, color *model.Color) error {
	return r.db.WithContext(ctx).Create(color).Error
}

func (r *catalogRepository) FindColorByID(ctx context.Context, id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *catalogRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *catalogRepository) CreateFuelType(ctx context.Context, ft *model.FuelType) error {
	return r.db.WithContext(ctx).Create(ft).Error
}

func (r *catalogRepository) FindFuelTypeByID(ctx context.Context, id uint) (*model.FuelType, error) {
	var ft model.FuelType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ft).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *catalogRepository) ListFuelTypes(ctx context.Context) ([]model.FuelType, error) {
	var fts []model.FuelType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&fts).Error; err != nil {
		return nil, err
	}
	return fts, nil
}

func (r *catalogRepository) CreateTransmissionType(ctx context.Context, tt *model.TransmissionType) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

func (r *catalogRepository) FindTransmissionTypeByID(ctx context.Context, id uint) (*model.TransmissionType, error) {
	var tt model.TransmissionType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *catalogRepository) ListTransmissionTypes(ctx context.Context) ([]model.TransmissionType, error) {
	var tts []model.TransmissionType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tts).Error; err != nil {
		return nil, err
	}
	return tts, nil
}

func (r *catalogRepository) CreateFeature(ctx context.Context, feature *model.Feature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

func (r *catalogRepository) UpdateFeature(ctx context.Context, feature *model.Feature) error {
	return r.db.WithContext(ctx).Save(feature).Error
}

func (r *catalogRepository) FindFeatureByID(ctx context.Context, id uint) (*model.Feature, error) {
	var feature model.Feature
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&feature).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *catalogRepository) ListFeatures(ctx context.Context) ([]model.Feature, error) {
	var features []model.Feature
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}
