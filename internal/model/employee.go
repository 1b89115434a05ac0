package model

import "time"

// Position is a job title held by employees.
type Position struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description *string   `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active" gorm:"default:true"`
}

// Employee is a staff member backed by a Contact and assigned a Position.
type Employee struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ContactID    uint       `json:"contact_id" gorm:"uniqueIndex;not null"`
	PositionID   uint       `json:"position_id" gorm:"not null;index"`
	HiredAt      *time.Time `json:"hired_at,omitempty"`
	TerminatedAt *time.Time `json:"terminated_at,omitempty"`
	Active       bool       `json:"active" gorm:"default:true"`

	// Relations
	Contact  Contact  `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
	Position Position `json:"position,omitempty" gorm:"foreignKey:PositionID"`
}
