package model

import "time"

// Client is a dealership customer backed by a Contact.
type Client struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ContactID    uint      `json:"contact_id" gorm:"uniqueIndex;not null"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
	Notes        *string   `json:"notes,omitempty" gorm:"type:text"`
	Active       bool      `json:"active" gorm:"default:true"`

	// Relations
	Contact Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}
