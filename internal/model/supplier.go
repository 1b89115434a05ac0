package model

import "time"

// Supplier provides vehicles or financing, backed by a Contact.
type Supplier struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ContactID    uint      `json:"contact_id" gorm:"uniqueIndex;not null"`
	SupplierType *string   `json:"supplier_type,omitempty" gorm:"size:100"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
	Active       bool      `json:"active" gorm:"default:true"`

	// Relations
	Contact Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}
