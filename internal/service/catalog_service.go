package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"dealerdesk/internal/cache"
	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

const catalogCacheTTL = 10 * time.Minute

// CatalogService manages the flat reference tables backing vehicles. List
// reads are cached; every write invalidates the affected listing.
type CatalogService interface {
	CreateBrand(ctx context.Context, name string) (*model.Brand, error)
	UpdateBrand(ctx context.Context, id uint, name string) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)

	CreateModel(ctx context.Context, brandID uint, name string) (*model.VehicleModel, error)
	UpdateModel(ctx context.Context, id uint, brandID *uint, name *string) (*model.VehicleModel, error)
	ListModels(ctx context.Context, brandID uint) ([]model.VehicleModel, error)

	CreateColor(ctx context.Context, name string) (*model.Color, error)
	ListColors(ctx context.Context) ([]model.Color, error)

	CreateFuelType(ctx context.Context, name string) (*model.FuelType, error)
	ListFuelTypes(ctx context.Context) ([]model.FuelType, error)

	CreateTransmissionType(ctx context.Context, name string) (*model.TransmissionType, error)
	ListTransmissionTypes(ctx context.Context) ([]model.TransmissionType, error)

	CreateFeature(ctx context.Context, name string, description *string) (*model.Feature, error)
	UpdateFeature(ctx context.Context, id uint, name *string, description *string) (*model.Feature, error)
	ListFeatures(ctx context.Context) ([]model.Feature, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	cache       *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo repository.CatalogRepository, cacheClient *cache.Client) CatalogService {
	return &catalogService{catalogRepo: catalogRepo, cache: cacheClient}
}

func mapCatalogWriteError(entity, name string, err error) error {
	if err == gorm.ErrDuplicatedKey {
		return errors.Ef(errors.KindDuplicate, "%s %q already exists", entity, name).WithField("name")
	}
	return errors.Wrap("write "+entity, err)
}

// cachedList serves a reference listing from cache, falling back to load and
// repopulating on a miss.
func cachedList[T any](ctx context.Context, c *cache.Client, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if data, _ := c.Get(ctx, key); data != nil {
		var cached []T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}
	items, err := load(ctx)
	if err != nil {
		return nil, errors.Wrap("list "+key, err)
	}
	if payload, err := json.Marshal(items); err == nil {
		_ = c.Set(ctx, key, payload, catalogCacheTTL)
	}
	return items, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, name string) (*model.Brand, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "brand name is required").WithField("name")
	}
	brand := &model.Brand{Name: name}
	if err := s.catalogRepo.CreateBrand(ctx, brand); err != nil {
		return nil, mapCatalogWriteError("brand", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:brands")
	return brand, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id uint, name string) (*model.Brand, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "brand name is required").WithField("name")
	}
	brand, err := s.catalogRepo.FindBrandByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "brand with id %d not found", id)
		}
		return nil, errors.Wrap("load brand", err)
	}
	brand.Name = name
	if err := s.catalogRepo.UpdateBrand(ctx, brand); err != nil {
		return nil, mapCatalogWriteError("brand", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:brands")
	return brand, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]model.Brand, error) {
	return cachedList(ctx, s.cache, "catalog:brands", s.catalogRepo.ListBrands)
}

func (s *catalogService) CreateModel(ctx context.Context, brandID uint, name string) (*model.VehicleModel, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "model name is required").WithField("name")
	}
	if _, err := s.catalogRepo.FindBrandByID(ctx, brandID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindForeignKeyNotFound, "brand with id %d does not exist", brandID).WithField("brand_id")
		}
		return nil, errors.Wrap("validate brand", err)
	}
	m := &model.VehicleModel{BrandID: brandID, Name: name}
	if err := s.catalogRepo.CreateModel(ctx, m); err != nil {
		return nil, mapCatalogWriteError("model", name, err)
	}
	return s.catalogRepo.FindModelByID(ctx, m.ID)
}

func (s *catalogService) UpdateModel(ctx context.Context, id uint, brandID *uint, name *string) (*model.VehicleModel, error) {
	m, err := s.catalogRepo.FindModelByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "model with id %d not found", id)
		}
		return nil, errors.Wrap("load model", err)
	}
	if brandID != nil && *brandID != m.BrandID {
		if _, err := s.catalogRepo.FindBrandByID(ctx, *brandID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.Ef(errors.KindForeignKeyNotFound, "brand with id %d does not exist", *brandID).WithField("brand_id")
			}
			return nil, errors.Wrap("validate brand", err)
		}
		m.BrandID = *brandID
	}
	if name != nil {
		if *name == "" {
			return nil, errors.E(errors.KindValidation, "model name must not be empty").WithField("name")
		}
		m.Name = *name
	}
	if err := s.catalogRepo.UpdateModel(ctx, m); err != nil {
		return nil, mapCatalogWriteError("model", m.Name, err)
	}
	return s.catalogRepo.FindModelByID(ctx, id)
}

func (s *catalogService) ListModels(ctx context.Context, brandID uint) ([]model.VehicleModel, error) {
	models, err := s.catalogRepo.ListModels(ctx, brandID)
	if err != nil {
		return nil, errors.Wrap("list models", err)
	}
	return models, nil
}

func (s *catalogService) CreateColor(ctx context.Context, name string) (*model.Color, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "color name is required").WithField("name")
	}
	color := &model.Color{Name: name}
	if err := s.catalogRepo.CreateColor(ctx, color); err != nil {
		return nil, mapCatalogWriteError("color", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:colors")
	return color, nil
}

func (s *catalogService) ListColors(ctx context.Context) ([]model.Color, error) {
	return cachedList(ctx, s.cache, "catalog:colors", s.catalogRepo.ListColors)
}

func (s *catalogService) CreateFuelType(ctx context.Context, name string) (*model.FuelType, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "fuel type name is required").WithField("name")
	}
	ft := &model.FuelType{Name: name}
	if err := s.catalogRepo.CreateFuelType(ctx, ft); err != nil {
		return nil, mapCatalogWriteError("fuel type", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:fuel_types")
	return ft, nil
}

func (s *catalogService) ListFuelTypes(ctx context.Context) ([]model.FuelType, error) {
	return cachedList(ctx, s.cache, "catalog:fuel_types", s.catalogRepo.ListFuelTypes)
}

func (s *catalogService) CreateTransmissionType(ctx context.Context, name string) (*model.TransmissionType, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "transmission type name is required").WithField("name")
	}
	tt := &model.TransmissionType{Name: name}
	if err := s.catalogRepo.CreateTransmissionType(ctx, tt); err != nil {
		return nil, mapCatalogWriteError("transmission type", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:transmission_types")
	return tt, nil
}

func (s *catalogService) ListTransmissionTypes(ctx context.Context) ([]model.TransmissionType, error) {
	return cachedList(ctx, s.cache, "catalog:transmission_types", s.catalogRepo.ListTransmissionTypes)
}

func (s *catalogService) CreateFeature(ctx context.Context, name string, description *string) (*model.Feature, error) {
	if name == "" {
		return nil, errors.E(errors.KindValidation, "feature name is required").WithField("name")
	}
	feature := &model.Feature{Name: name, Description: description}
	if err := s.catalogRepo.CreateFeature(ctx, feature); err != nil {
		return nil, mapCatalogWriteError("feature", name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:features")
	return feature, nil
}

func (s *catalogService) UpdateFeature(ctx context.Context, id uint, name *string, description *string) (*model.Feature, error) {
	feature, err := s.catalogRepo.FindFeatureByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "feature with id %d not found", id)
		}
		return nil, errors.Wrap("load feature", err)
	}
	if name != nil {
		if *name == "" {
			return nil, errors.E(errors.KindValidation, "feature name must not be empty").WithField("name")
		}
		feature.Name = *name
	}
	if description != nil {
		feature.Description = description
	}
	if err := s.catalogRepo.UpdateFeature(ctx, feature); err != nil {
		return nil, mapCatalogWriteError("feature", feature.Name, err)
	}
	_ = s.cache.Delete(ctx, "catalog:features")
	return feature, nil
}

func (s *catalogService) ListFeatures(ctx context.Context) ([]model.Feature, error) {
	return cachedList(ctx, s.cache, "catalog:features", s.catalogRepo.ListFeatures)
}
