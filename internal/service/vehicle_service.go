package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dealerdesk/internal/cache"
	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

const vehicleCacheTTL = 5 * time.Minute

// AcquisitionInput carries the acquisition payload nested in vehicle writes.
type AcquisitionInput struct {
	Date            *time.Time            `json:"date"`
	Cost            *decimal.Decimal      `json:"cost"`
	Type            model.AcquisitionType `json:"type"`
	SupplierID      *uint                 `json:"supplier_id"`
	TradeInClientID *uint                 `json:"trade_in_client_id"`
	RegisteredByID  *uint                 `json:"registered_by_id"`
	Notes           *string               `json:"notes"`
}

// FeatureInput is one requested feature association. Remove marks an
// existing association for deletion on update.
type FeatureInput struct {
	FeatureID uint    `json:"feature_id"`
	Value     *string `json:"value"`
	Remove    bool    `json:"remove"`
}

// CreateVehicleInput is the full vehicle creation payload. The acquisition
// is mandatory: a vehicle never exists without one.
type CreateVehicleInput struct {
	ModelID            uint                `json:"model_id"`
	ColorID            uint                `json:"color_id"`
	TransmissionTypeID uint                `json:"transmission_type_id"`
	FuelTypeID         uint                `json:"fuel_type_id"`
	Year               int                 `json:"year"`
	VIN                string              `json:"vin"`
	EngineNumber       *string             `json:"engine_number"`
	ChassisNumber      *string             `json:"chassis_number"`
	Mileage            *int                `json:"mileage"`
	DoorCount          *int                `json:"door_count"`
	PassengerCapacity  *int                `json:"passenger_capacity"`
	BasePrice          decimal.Decimal     `json:"base_price"`
	SuggestedPrice     *decimal.Decimal    `json:"suggested_price"`
	Description        *string             `json:"description"`
	Status             model.VehicleStatus `json:"status"`
	Location           *string             `json:"location"`
	Acquisition        *AcquisitionInput   `json:"acquisition"`
	Features           []FeatureInput      `json:"features"`
}

// UpdateVehicleInput carries partial vehicle updates. Nil fields are left
// untouched; a non-nil Features slice triggers full reconciliation.
type UpdateVehicleInput struct {
	ModelID            *uint                `json:"model_id"`
	ColorID            *uint                `json:"color_id"`
	TransmissionTypeID *uint                `json:"transmission_type_id"`
	FuelTypeID         *uint                `json:"fuel_type_id"`
	Year               *int                 `json:"year"`
	VIN                *string              `json:"vin"`
	EngineNumber       *string              `json:"engine_number"`
	ChassisNumber      *string              `json:"chassis_number"`
	Mileage            *int                 `json:"mileage"`
	DoorCount          *int                 `json:"door_count"`
	PassengerCapacity  *int                 `json:"passenger_capacity"`
	BasePrice          *decimal.Decimal     `json:"base_price"`
	SuggestedPrice     *decimal.Decimal     `json:"suggested_price"`
	Description        *string              `json:"description"`
	Status             *model.VehicleStatus `json:"status"`
	Location           *string              `json:"location"`
	Acquisition        *AcquisitionInput    `json:"acquisition"`
	Features           *[]FeatureInput      `json:"features"`
}

// VehicleService is the transactional writer for vehicles: a vehicle, its
// mandatory acquisition and its feature associations move as one unit.
type VehicleService interface {
	Create(ctx context.Context, input CreateVehicleInput) (*model.Vehicle, error)
	Update(ctx context.Context, id uint, input UpdateVehicleInput) (*model.Vehicle, error)
	GetByID(ctx context.Context, id uint) (*model.Vehicle, error)
	List(ctx context.Context, params repository.ListParams, filter repository.VehicleFilter) ([]model.Vehicle, int64, error)
	Delete(ctx context.Context, id uint) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	catalogRepo repository.CatalogRepository
	cache       *cache.Client
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	catalogRepo repository.CatalogRepository,
	cache *cache.Client,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

func (s *vehicleService) cacheKey(id uint) string {
	return fmt.Sprintf("vehicle:%d", id)
}

// validateForeignKeys checks every non-zero catalog reference and names the
// offending field on failure.
func (s *vehicleService) validateForeignKeys(ctx context.Context, modelID, colorID, transmissionTypeID, fuelTypeID uint) error {
	if modelID != 0 {
		if _, err := s.catalogRepo.FindModelByID(ctx, modelID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindForeignKeyNotFound, "model with id %d does not exist", modelID).WithField("model_id")
			}
			return errors.Wrap("validate model", err)
		}
	}
	if colorID != 0 {
		if _, err := s.catalogRepo.FindColorByID(ctx, colorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindForeignKeyNotFound, "color with id %d does not exist", colorID).WithField("color_id")
			}
			return errors.Wrap("validate color", err)
		}
	}
	if transmissionTypeID != 0 {
		if _, err := s.catalogRepo.FindTransmissionTypeByID(ctx, transmissionTypeID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindForeignKeyNotFound, "transmission type with id %d does not exist", transmissionTypeID).WithField("transmission_type_id")
			}
			return errors.Wrap("validate transmission type", err)
		}
	}
	if fuelTypeID != 0 {
		if _, err := s.catalogRepo.FindFuelTypeByID(ctx, fuelTypeID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindForeignKeyNotFound, "fuel type with id %d does not exist", fuelTypeID).WithField("fuel_type_id")
			}
			return errors.Wrap("validate fuel type", err)
		}
	}
	return nil
}

func validateAcquisitionInput(acq *AcquisitionInput) error {
	if acq == nil {
		return errors.E(errors.KindValidation, "acquisition data is required").WithField("acquisition")
	}
	if acq.Date == nil {
		return errors.E(errors.KindValidation, "acquisition date is required").WithField("acquisition.date")
	}
	if acq.Cost == nil {
		return errors.E(errors.KindValidation, "acquisition cost is required").WithField("acquisition.cost")
	}
	if acq.Cost.IsNegative() {
		return errors.E(errors.KindValidation, "acquisition cost must not be negative").WithField("acquisition.cost")
	}
	if !model.ValidAcquisitionType(acq.Type) {
		return errors.Ef(errors.KindValidation, "unknown acquisition type %q", acq.Type).WithField("acquisition.type")
	}
	return nil
}

// Create inserts the vehicle, its acquisition and the feature join rows in
// one transaction. Unknown feature ids are skipped with a warning; every
// other failure rolls the whole write back.
func (s *vehicleService) Create(ctx context.Context, input CreateVehicleInput) (*model.Vehicle, error) {
	if input.VIN == "" {
		return nil, errors.E(errors.KindValidation, "vin is required").WithField("vin")
	}
	if input.BasePrice.IsNegative() {
		return nil, errors.E(errors.KindValidation, "base price must not be negative").WithField("base_price")
	}
	if input.Status != "" && !model.ValidVehicleStatus(input.Status) {
		return nil, errors.Ef(errors.KindValidation, "unknown inventory status %q", input.Status).WithField("status")
	}
	if err := validateAcquisitionInput(input.Acquisition); err != nil {
		return nil, err
	}
	if err := s.validateForeignKeys(ctx, input.ModelID, input.ColorID, input.TransmissionTypeID, input.FuelTypeID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.VehicleStatusInPreparation
	}

	vehicle := &model.Vehicle{
		ModelID:            input.ModelID,
		ColorID:            input.ColorID,
		TransmissionTypeID: input.TransmissionTypeID,
		FuelTypeID:         input.FuelTypeID,
		Year:               input.Year,
		VIN:                input.VIN,
		EngineNumber:       input.EngineNumber,
		ChassisNumber:      input.ChassisNumber,
		Mileage:            input.Mileage,
		DoorCount:          input.DoorCount,
		PassengerCapacity:  input.PassengerCapacity,
		BasePrice:          input.BasePrice,
		SuggestedPrice:     input.SuggestedPrice,
		Description:        input.Description,
		Status:             status,
		Location:           input.Location,
	}

	err := s.vehicleRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.VehicleRepository) error {
		if err := txRepo.Create(ctx, vehicle); err != nil {
			return errors.Wrap("create vehicle", err)
		}

		acq := &model.Acquisition{
			VehicleID:       vehicle.ID,
			Date:            *input.Acquisition.Date,
			Cost:            *input.Acquisition.Cost,
			Type:            input.Acquisition.Type,
			SupplierID:      input.Acquisition.SupplierID,
			TradeInClientID: input.Acquisition.TradeInClientID,
			RegisteredByID:  input.Acquisition.RegisteredByID,
			Notes:           input.Acquisition.Notes,
		}
		if err := txRepo.CreateAcquisition(ctx, acq); err != nil {
			return errors.Wrap("create acquisition", err)
		}

		for _, f := range input.Features {
			if _, err := s.catalogRepo.FindFeatureByID(ctx, f.FeatureID); err != nil {
				if err == gorm.ErrRecordNotFound {
					log.Printf("warning: feature %d does not exist, skipping association", f.FeatureID)
					continue
				}
				return errors.Wrap("validate feature", err)
			}
			row := &model.VehicleFeature{VehicleID: vehicle.ID, FeatureID: f.FeatureID, Value: f.Value}
			if err := txRepo.CreateFeatureRow(ctx, row); err != nil {
				return errors.Wrap("create feature association", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(vehicle.ID))
	return s.vehicleRepo.FindByIDFull(ctx, vehicle.ID)
}

// Update applies partial vehicle changes, updates or creates the acquisition
// and reconciles feature associations, all inside one transaction.
func (s *vehicleService) Update(ctx context.Context, id uint, input UpdateVehicleInput) (*model.Vehicle, error) {
	if input.Status != nil && !model.ValidVehicleStatus(*input.Status) {
		return nil, errors.Ef(errors.KindValidation, "unknown inventory status %q", *input.Status).WithField("status")
	}
	if input.BasePrice != nil && input.BasePrice.IsNegative() {
		return nil, errors.E(errors.KindValidation, "base price must not be negative").WithField("base_price")
	}

	err := s.vehicleRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.VehicleRepository) error {
		vehicle, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindNotFound, "vehicle with id %d not found", id)
			}
			return errors.Wrap("load vehicle", err)
		}

		if err := s.validateForeignKeys(ctx,
			derefOrZero(input.ModelID), derefOrZero(input.ColorID),
			derefOrZero(input.TransmissionTypeID), derefOrZero(input.FuelTypeID)); err != nil {
			return err
		}

		applyVehicleUpdates(vehicle, input)
		if err := txRepo.Update(ctx, vehicle); err != nil {
			return errors.Wrap("update vehicle", err)
		}

		if input.Acquisition != nil {
			if err := s.applyAcquisitionUpdate(ctx, txRepo, id, input.Acquisition); err != nil {
				return err
			}
		}

		if input.Features != nil {
			if err := s.reconcileFeatures(ctx, txRepo, id, *input.Features); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.vehicleRepo.FindByIDFull(ctx, id)
}

// applyAcquisitionUpdate mutates the existing acquisition row. A vehicle
// without one should not occur; when it does, creating the row requires the
// mandatory fields.
func (s *vehicleService) applyAcquisitionUpdate(ctx context.Context, txRepo repository.VehicleRepository, vehicleID uint, input *AcquisitionInput) error {
	acq, err := txRepo.FindAcquisitionByVehicleID(ctx, vehicleID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return errors.Wrap("load acquisition", err)
		}
		if err := validateAcquisitionInput(input); err != nil {
			return err
		}
		acq = &model.Acquisition{
			VehicleID:       vehicleID,
			Date:            *input.Date,
			Cost:            *input.Cost,
			Type:            input.Type,
			SupplierID:      input.SupplierID,
			TradeInClientID: input.TradeInClientID,
			RegisteredByID:  input.RegisteredByID,
			Notes:           input.Notes,
		}
		if err := txRepo.CreateAcquisition(ctx, acq); err != nil {
			return errors.Wrap("create acquisition", err)
		}
		return nil
	}

	if input.Date != nil {
		acq.Date = *input.Date
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return errors.E(errors.KindValidation, "acquisition cost must not be negative").WithField("acquisition.cost")
		}
		acq.Cost = *input.Cost
	}
	if input.Type != "" {
		if !model.ValidAcquisitionType(input.Type) {
			return errors.Ef(errors.KindValidation, "unknown acquisition type %q", input.Type).WithField("acquisition.type")
		}
		acq.Type = input.Type
	}
	if input.SupplierID != nil {
		acq.SupplierID = input.SupplierID
	}
	if input.TradeInClientID != nil {
		acq.TradeInClientID = input.TradeInClientID
	}
	if input.RegisteredByID != nil {
		acq.RegisteredByID = input.RegisteredByID
	}
	if input.Notes != nil {
		acq.Notes = input.Notes
	}
	if err := txRepo.UpdateAcquisition(ctx, acq); err != nil {
		return errors.Wrap("update acquisition", err)
	}
	return nil
}

// reconcileFeatures makes stored associations match the incoming list:
// missing or Remove-flagged rows are deleted, known features are created or
// have their value updated, unknown features are skipped with a warning.
func (s *vehicleService) reconcileFeatures(ctx context.Context, txRepo repository.VehicleRepository, vehicleID uint, incoming []FeatureInput) error {
	current, err := txRepo.ListFeatureRows(ctx, vehicleID)
	if err != nil {
		return errors.Wrap("list feature associations", err)
	}

	keep := make(map[uint]struct{}, len(incoming))
	for _, f := range incoming {
		if !f.Remove && f.FeatureID != 0 {
			keep[f.FeatureID] = struct{}{}
		}
	}

	existing := make(map[uint]struct{}, len(current))
	for _, row := range current {
		existing[row.FeatureID] = struct{}{}
		if _, ok := keep[row.FeatureID]; !ok {
			if err := txRepo.DeleteFeatureRow(ctx, vehicleID, row.FeatureID); err != nil {
				return errors.Wrap("delete feature association", err)
			}
		}
	}

	for _, f := range incoming {
		if f.Remove || f.FeatureID == 0 {
			continue
		}
		if _, err := s.catalogRepo.FindFeatureByID(ctx, f.FeatureID); err != nil {
			if err == gorm.ErrRecordNotFound {
				log.Printf("warning: feature %d does not exist, skipping association", f.FeatureID)
				continue
			}
			return errors.Wrap("validate feature", err)
		}

		if _, ok := existing[f.FeatureID]; ok {
			if err := txRepo.UpdateFeatureRowValue(ctx, vehicleID, f.FeatureID, f.Value); err != nil {
				return errors.Wrap("update feature association", err)
			}
		} else {
			row := &model.VehicleFeature{VehicleID: vehicleID, FeatureID: f.FeatureID, Value: f.Value}
			if err := txRepo.CreateFeatureRow(ctx, row); err != nil {
				return errors.Wrap("create feature association", err)
			}
		}
	}
	return nil
}

// GetByID retrieves a vehicle with all associations, served from cache when
// possible.
func (s *vehicleService) GetByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Vehicle
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.FindByIDFull(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "vehicle with id %d not found", id)
		}
		return nil, errors.Wrap("load vehicle", err)
	}

	if payload, err := json.Marshal(vehicle); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, vehicleCacheTTL)
	}
	return vehicle, nil
}

func (s *vehicleService) List(ctx context.Context, params repository.ListParams, filter repository.VehicleFilter) ([]model.Vehicle, int64, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, filter)
	if err != nil {
		return nil, 0, errors.Wrap("list vehicles", err)
	}
	return vehicles, total, nil
}

// Delete withdraws a vehicle from inventory by flipping its status to
// No Disponible. Sold vehicles stay sold; acquisition and feature rows are
// never removed.
func (s *vehicleService) Delete(ctx context.Context, id uint) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "vehicle with id %d not found", id)
		}
		return errors.Wrap("load vehicle", err)
	}

	if vehicle.Status == model.VehicleStatusSold {
		return errors.Ef(errors.KindAlreadySold, "vehicle with id %d has been sold and cannot be withdrawn", id)
	}

	vehicle.Status = model.VehicleStatusUnavailable
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return errors.Wrap("update vehicle status", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func applyVehicleUpdates(vehicle *model.Vehicle, input UpdateVehicleInput) {
	if input.ModelID != nil {
		vehicle.ModelID = *input.ModelID
	}
	if input.ColorID != nil {
		vehicle.ColorID = *input.ColorID
	}
	if input.TransmissionTypeID != nil {
		vehicle.TransmissionTypeID = *input.TransmissionTypeID
	}
	if input.FuelTypeID != nil {
		vehicle.FuelTypeID = *input.FuelTypeID
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.VIN != nil {
		vehicle.VIN = *input.VIN
	}
	if input.EngineNumber != nil {
		vehicle.EngineNumber = input.EngineNumber
	}
	if input.ChassisNumber != nil {
		vehicle.ChassisNumber = input.ChassisNumber
	}
	if input.Mileage != nil {
		vehicle.Mileage = input.Mileage
	}
	if input.DoorCount != nil {
		vehicle.DoorCount = input.DoorCount
	}
	if input.PassengerCapacity != nil {
		vehicle.PassengerCapacity = input.PassengerCapacity
	}
	if input.BasePrice != nil {
		vehicle.BasePrice = *input.BasePrice
	}
	if input.SuggestedPrice != nil {
		vehicle.SuggestedPrice = input.SuggestedPrice
	}
	if input.Description != nil {
		vehicle.Description = input.Description
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if input.Location != nil {
		vehicle.Location = input.Location
	}
}

func derefOrZero(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}
