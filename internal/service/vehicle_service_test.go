package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

func validCreateVehicleInput() CreateVehicleInput {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cost := decimal.NewFromInt(15000)
	return CreateVehicleInput{
		ModelID:            1,
		ColorID:            2,
		TransmissionTypeID: 3,
		FuelTypeID:         4,
		Year:               2022,
		VIN:                "1HGBH41JXMN109186",
		BasePrice:          decimal.NewFromInt(18500),
		Acquisition: &AcquisitionInput{
			Date: &date,
			Cost: &cost,
			Type: model.AcquisitionDirectPurchase,
		},
	}
}

func setupCatalogFKs(mCatalog *MockCatalogRepository) {
	mCatalog.On("FindModelByID", mock.Anything, uint(1)).Return(&model.VehicleModel{ID: 1}, nil)
	mCatalog.On("FindColorByID", mock.Anything, uint(2)).Return(&model.Color{ID: 2}, nil)
	mCatalog.On("FindTransmissionTypeByID", mock.Anything, uint(3)).Return(&model.TransmissionType{ID: 3}, nil)
	mCatalog.On("FindFuelTypeByID", mock.Anything, uint(4)).Return(&model.FuelType{ID: 4}, nil)
}

func TestVehicleService_Create(t *testing.T) {
	t.Run("missing acquisition is rejected before any write", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockCatalog := new(MockCatalogRepository)
		svc := NewVehicleService(mockRepo, mockCatalog, nil)

		input := validCreateVehicleInput()
		input.Acquisition = nil

		vehicle, err := svc.Create(context.Background(), input)
		assert.Nil(t, vehicle)
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		mockRepo.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("unknown model id fails with the field named", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockCatalog := new(MockCatalogRepository)
		mockCatalog.On("FindModelByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
		svc := NewVehicleService(mockRepo, mockCatalog, nil)

		vehicle, err := svc.Create(context.Background(), validCreateVehicleInput())
		assert.Nil(t, vehicle)
		assert.Equal(t, errors.KindForeignKeyNotFound, errors.KindOf(err))

		var de *errors.Error
		assert.ErrorAs(t, err, &de)
		assert.Equal(t, "model_id", de.Field)
		mockRepo.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("creates vehicle, acquisition and known features in one transaction", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockCatalog := new(MockCatalogRepository)
		setupCatalogFKs(mockCatalog)

		// One known feature, one unknown which is skipped.
		mockCatalog.On("FindFeatureByID", mock.Anything, uint(10)).Return(&model.Feature{ID: 10}, nil)
		mockCatalog.On("FindFeatureByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		mockRepo.On("WithTransaction", mock.Anything).Return(nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vehicle")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Vehicle).ID = 7
		}).Return(nil)
		mockRepo.On("CreateAcquisition", mock.Anything, mock.MatchedBy(func(acq *model.Acquisition) bool {
			return acq.VehicleID == 7 && acq.Type == model.AcquisitionDirectPurchase
		})).Return(nil)
		mockRepo.On("CreateFeatureRow", mock.Anything, mock.MatchedBy(func(row *model.VehicleFeature) bool {
			return row.VehicleID == 7 && row.FeatureID == 10
		})).Return(nil)
		mockRepo.On("FindByIDFull", mock.Anything, uint(7)).Return(&model.Vehicle{
			ID:     7,
			VIN:    "1HGBH41JXMN109186",
			Status: model.VehicleStatusInPreparation,
		}, nil)

		svc := NewVehicleService(mockRepo, mockCatalog, nil)

		input := validCreateVehicleInput()
		input.Features = []FeatureInput{{FeatureID: 10}, {FeatureID: 99}}

		vehicle, err := svc.Create(context.Background(), input)
		assert.NoError(t, err)
		assert.NotNil(t, vehicle)
		assert.Equal(t, model.VehicleStatusInPreparation, vehicle.Status)

		mockRepo.AssertExpectations(t)
		mockRepo.AssertNumberOfCalls(t, "CreateFeatureRow", 1)
	})

	t.Run("defaults status when none given", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockCatalog := new(MockCatalogRepository)
		setupCatalogFKs(mockCatalog)

		mockRepo.On("WithTransaction", mock.Anything).Return(nil)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *model.Vehicle) bool {
			return v.Status == model.VehicleStatusInPreparation
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Vehicle).ID = 3
		}).Return(nil)
		mockRepo.On("CreateAcquisition", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindByIDFull", mock.Anything, uint(3)).Return(&model.Vehicle{ID: 3}, nil)

		svc := NewVehicleService(mockRepo, mockCatalog, nil)

		_, err := svc.Create(context.Background(), validCreateVehicleInput())
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestVehicleService_Delete(t *testing.T) {
	t.Run("sold vehicles cannot be withdrawn", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Vehicle{
			ID:     5,
			Status: model.VehicleStatusSold,
		}, nil)

		svc := NewVehicleService(mockRepo, new(MockCatalogRepository), nil)

		err := svc.Delete(context.Background(), 5)
		assert.Equal(t, errors.KindAlreadySold, errors.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("withdrawal flips status instead of deleting the row", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Vehicle{
			ID:     5,
			Status: model.VehicleStatusAvailable,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(v *model.Vehicle) bool {
			return v.Status == model.VehicleStatusUnavailable
		})).Return(nil)

		svc := NewVehicleService(mockRepo, new(MockCatalogRepository), nil)

		assert.NoError(t, svc.Delete(context.Background(), 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing vehicle", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewVehicleService(mockRepo, new(MockCatalogRepository), nil)

		err := svc.Delete(context.Background(), 404)
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestVehicleService_Update_FeatureReconciliation(t *testing.T) {
	mockRepo := new(MockVehicleRepository)
	mockCatalog := new(MockCatalogRepository)

	existingValue := "old"
	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Vehicle{
		ID:     7,
		Status: model.VehicleStatusAvailable,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("ListFeatureRows", mock.Anything, uint(7)).Return([]model.VehicleFeature{
		{VehicleID: 7, FeatureID: 10, Value: &existingValue}, // kept, value updated
		{VehicleID: 7, FeatureID: 20},                        // absent from input, deleted
	}, nil)

	mockCatalog.On("FindFeatureByID", mock.Anything, uint(10)).Return(&model.Feature{ID: 10}, nil)
	mockCatalog.On("FindFeatureByID", mock.Anything, uint(30)).Return(&model.Feature{ID: 30}, nil)

	mockRepo.On("DeleteFeatureRow", mock.Anything, uint(7), uint(20)).Return(nil)
	mockRepo.On("UpdateFeatureRowValue", mock.Anything, uint(7), uint(10), mock.Anything).Return(nil)
	mockRepo.On("CreateFeatureRow", mock.Anything, mock.MatchedBy(func(row *model.VehicleFeature) bool {
		return row.FeatureID == 30
	})).Return(nil)
	mockRepo.On("FindByIDFull", mock.Anything, uint(7)).Return(&model.Vehicle{ID: 7}, nil)

	svc := NewVehicleService(mockRepo, mockCatalog, nil)

	newValue := "new"
	features := []FeatureInput{
		{FeatureID: 10, Value: &newValue},
		{FeatureID: 30},
	}
	_, err := svc.Update(context.Background(), 7, UpdateVehicleInput{Features: &features})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestVehicleService_List(t *testing.T) {
	mockRepo := new(MockVehicleRepository)
	params := repository.ListParams{Page: 1, Limit: 10}
	filter := repository.VehicleFilter{Status: model.VehicleStatusAvailable}

	mockRepo.On("List", mock.Anything, params, filter).Return([]model.Vehicle{{ID: 1}, {ID: 2}}, int64(2), nil)

	svc := NewVehicleService(mockRepo, new(MockCatalogRepository), nil)

	vehicles, total, err := svc.List(context.Background(), params, filter)
	assert.NoError(t, err)
	assert.Len(t, vehicles, 2)
	assert.Equal(t, int64(2), total)
}
