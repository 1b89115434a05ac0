package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AcquisitionType records how a vehicle entered the inventory.
type AcquisitionType string

const (
	AcquisitionDirectPurchase AcquisitionType = "Compra Directa"
	AcquisitionTradeIn        AcquisitionType = "Trade-In"
	AcquisitionConsignment    AcquisitionType = "Consignacion"
	AcquisitionAuction        AcquisitionType = "Subasta"
	AcquisitionOther          AcquisitionType = "Otro"
)

// ValidAcquisitionType reports whether t is a known acquisition type.
func ValidAcquisitionType(t AcquisitionType) bool {
	switch t {
	case AcquisitionDirectPurchase, AcquisitionTradeIn, AcquisitionConsignment,
		AcquisitionAuction, AcquisitionOther:
		return true
	}
	return false
}

// Acquisition is the mandatory 1:1 record of how and at what cost a vehicle
// was obtained. The unique index on VehicleID enforces one row per vehicle.
type Acquisition struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	VehicleID       uint            `json:"vehicle_id" gorm:"uniqueIndex;not null"`
	Date            time.Time       `json:"date" gorm:"not null"`
	Cost            decimal.Decimal `json:"cost" gorm:"type:decimal(14,2);not null"`
	Type            AcquisitionType `json:"type" gorm:"size:20;not null"`
	SupplierID      *uint           `json:"supplier_id,omitempty"`
	TradeInClientID *uint           `json:"trade_in_client_id,omitempty"`
	RegisteredByID  *uint           `json:"registered_by_id,omitempty"`
	Notes           *string         `json:"notes,omitempty" gorm:"type:text"`

	// Relations
	Supplier      *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	TradeInClient *Client   `json:"trade_in_client,omitempty" gorm:"foreignKey:TradeInClientID"`
	RegisteredBy  *Employee `json:"registered_by,omitempty" gorm:"foreignKey:RegisteredByID"`
}
