package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStatus tracks where a vehicle sits in the inventory lifecycle.
// The values are the persisted strings and must not be renamed.
type VehicleStatus string

const (
	VehicleStatusAvailable     VehicleStatus = "Disponible"
	VehicleStatusReserved      VehicleStatus = "Reservado"
	VehicleStatusSold          VehicleStatus = "Vendido"
	VehicleStatusInPreparation VehicleStatus = "En Preparacion"
	VehicleStatusConsignment   VehicleStatus = "Consignacion"
	VehicleStatusUnavailable   VehicleStatus = "No Disponible"
)

// ValidVehicleStatus reports whether s is one of the known inventory states.
func ValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusReserved, VehicleStatusSold,
		VehicleStatusInPreparation, VehicleStatusConsignment, VehicleStatusUnavailable:
		return true
	}
	return false
}

// Vehicle is a unit of inventory. Every vehicle owns exactly one Acquisition
// once created; both rows are written in the same transaction.
type Vehicle struct {
	ID                 uint             `json:"id" gorm:"primaryKey"`
	ModelID            uint             `json:"model_id" gorm:"not null;index"`
	ColorID            uint             `json:"color_id" gorm:"not null;index"`
	TransmissionTypeID uint             `json:"transmission_type_id" gorm:"not null;index"`
	FuelTypeID         uint             `json:"fuel_type_id" gorm:"not null;index"`
	Year               int              `json:"year" gorm:"not null"`
	VIN                string           `json:"vin" gorm:"uniqueIndex;size:64;not null"`
	EngineNumber       *string          `json:"engine_number,omitempty" gorm:"uniqueIndex;size:64"`
	ChassisNumber      *string          `json:"chassis_number,omitempty" gorm:"uniqueIndex;size:64"`
	Mileage            *int             `json:"mileage,omitempty"`
	DoorCount          *int             `json:"door_count,omitempty"`
	PassengerCapacity  *int             `json:"passenger_capacity,omitempty"`
	BasePrice          decimal.Decimal  `json:"base_price" gorm:"type:decimal(14,2);not null"`
	SuggestedPrice     *decimal.Decimal `json:"suggested_price,omitempty" gorm:"type:decimal(14,2)"`
	Description        *string          `json:"description,omitempty" gorm:"type:text"`
	Status             VehicleStatus    `json:"status" gorm:"size:20;not null;default:'En Preparacion';index"`
	RegisteredAt       time.Time        `json:"registered_at" gorm:"autoCreateTime;index"`
	Location           *string          `json:"location,omitempty" gorm:"size:255"`

	// Relations
	Model            VehicleModel     `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	Color            Color            `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	TransmissionType TransmissionType `json:"transmission_type,omitempty" gorm:"foreignKey:TransmissionTypeID"`
	FuelType         FuelType         `json:"fuel_type,omitempty" gorm:"foreignKey:FuelTypeID"`
	Acquisition      *Acquisition     `json:"acquisition,omitempty" gorm:"foreignKey:VehicleID"`
	Features         []VehicleFeature `json:"features,omitempty" gorm:"foreignKey:VehicleID"`
}

// VehicleFeature joins a vehicle to a feature, optionally carrying a value
// string for the pairing (e.g. "Sunroof" -> "panoramic").
type VehicleFeature struct {
	VehicleID uint    `json:"vehicle_id" gorm:"primaryKey"`
	FeatureID uint    `json:"feature_id" gorm:"primaryKey"`
	Value     *string `json:"value,omitempty" gorm:"size:255"`

	Feature Feature `json:"feature,omitempty" gorm:"foreignKey:FeatureID"`
}
