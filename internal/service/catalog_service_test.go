package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
)

func TestCatalogService_CreateBrand(t *testing.T) {
	t.Run("creates a brand", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockCatalog.On("CreateBrand", mock.Anything, mock.MatchedBy(func(brand *model.Brand) bool {
			return brand.Name == "Toyota"
		})).Return(nil)

		svc := NewCatalogService(mockCatalog, nil)

		brand, err := svc.CreateBrand(context.Background(), "Toyota")
		assert.NoError(t, err)
		assert.Equal(t, "Toyota", brand.Name)
	})

	t.Run("duplicate names surface as a conflict", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockCatalog.On("CreateBrand", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

		svc := NewCatalogService(mockCatalog, nil)

		_, err := svc.CreateBrand(context.Background(), "Toyota")
		assert.Equal(t, errors.KindDuplicate, errors.KindOf(err))
	})

	t.Run("empty name", func(t *testing.T) {
		svc := NewCatalogService(new(MockCatalogRepository), nil)

		_, err := svc.CreateBrand(context.Background(), "")
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	})
}

func TestCatalogService_CreateModel(t *testing.T) {
	t.Run("requires an existing brand", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockCatalog.On("FindBrandByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCatalogService(mockCatalog, nil)

		_, err := svc.CreateModel(context.Background(), 8, "Corolla")
		assert.Equal(t, errors.KindForeignKeyNotFound, errors.KindOf(err))
		mockCatalog.AssertNotCalled(t, "CreateModel", mock.Anything, mock.Anything)
	})

	t.Run("creates a model under its brand", func(t *testing.T) {
		mockCatalog := new(MockCatalogRepository)
		mockCatalog.On("FindBrandByID", mock.Anything, uint(8)).Return(&model.Brand{ID: 8, Name: "Toyota"}, nil)
		mockCatalog.On("CreateModel", mock.Anything, mock.MatchedBy(func(vm *model.VehicleModel) bool {
			return vm.BrandID == 8 && vm.Name == "Corolla"
		})).Return(nil)

		svc := NewCatalogService(mockCatalog, nil)

		vm, err := svc.CreateModel(context.Background(), 8, "Corolla")
		assert.NoError(t, err)
		assert.Equal(t, "Corolla", vm.Name)
		mockCatalog.AssertExpectations(t)
	})
}

func TestCatalogService_ListBrands(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockCatalog.On("ListBrands", mock.Anything).Return([]model.Brand{
		{ID: 1, Name: "Toyota"},
		{ID: 2, Name: "Honda"},
	}, nil)

	svc := NewCatalogService(mockCatalog, nil)

	brands, err := svc.ListBrands(context.Background())
	assert.NoError(t, err)
	assert.Len(t, brands, 2)
}

func TestCatalogService_CreateFeature(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)

	description := "Heated front seats"
	mockCatalog.On("CreateFeature", mock.Anything, mock.MatchedBy(func(feature *model.Feature) bool {
		return feature.Name == "Heated Seats" && feature.Description != nil
	})).Return(nil)

	svc := NewCatalogService(mockCatalog, nil)

	feature, err := svc.CreateFeature(context.Background(), "Heated Seats", &description)
	assert.NoError(t, err)
	assert.Equal(t, "Heated Seats", feature.Name)
}
