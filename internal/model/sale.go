package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType enumerates how a sale is paid.
type PaymentType string

const (
	PaymentCash      PaymentType = "Contado"
	PaymentFinanced  PaymentType = "Financiado"
	PaymentMixed     PaymentType = "Mixto"
	PaymentLeasing   PaymentType = "Leasing"
	PaymentOtherType PaymentType = "Otro"
)

// SaleStatus tracks the sale lifecycle.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "Pendiente"
	SaleStatusCompleted SaleStatus = "Completada"
	SaleStatusInvoiced  SaleStatus = "Facturada"
	SaleStatusCancelled SaleStatus = "Cancelada"
)

// ValidPaymentType reports whether t is a known payment type.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentCash, PaymentFinanced, PaymentMixed, PaymentLeasing, PaymentOtherType:
		return true
	}
	return false
}

// ValidSaleStatus reports whether s is a known sale status.
func ValidSaleStatus(s SaleStatus) bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusInvoiced, SaleStatusCancelled:
		return true
	}
	return false
}

// Sale records a vehicle sold to a client by an employee. Creating a sale
// flips the vehicle to Vendido in the same transaction.
type Sale struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	VehicleID         uint             `json:"vehicle_id" gorm:"not null;index"`
	ClientID          uint             `json:"client_id" gorm:"not null;index"`
	SellerID          uint             `json:"seller_id" gorm:"not null;index"`
	SoldAt            time.Time        `json:"sold_at" gorm:"autoCreateTime"`
	FinalPrice        decimal.Decimal  `json:"final_price" gorm:"type:decimal(14,2);not null"`
	Taxes             *decimal.Decimal `json:"taxes,omitempty" gorm:"type:decimal(12,2)"`
	Discount          decimal.Decimal  `json:"discount" gorm:"type:decimal(12,2);default:0"`
	PaymentType       *PaymentType     `json:"payment_type,omitempty" gorm:"size:20"`
	FinancingEntityID *uint            `json:"financing_entity_id,omitempty"`
	Status            SaleStatus       `json:"status" gorm:"size:20;not null;default:'Pendiente';index"`
	Notes             *string          `json:"notes,omitempty" gorm:"type:text"`

	// Relations
	Vehicle         Vehicle   `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Client          Client    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Seller          Employee  `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	FinancingEntity *Supplier `json:"financing_entity,omitempty" gorm:"foreignKey:FinancingEntityID"`
	Invoice         *Invoice  `json:"invoice,omitempty" gorm:"foreignKey:SaleID"`
}
