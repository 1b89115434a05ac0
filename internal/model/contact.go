package model

import "time"

// DocumentType enumerates accepted identity document kinds.
type DocumentType string

const (
	DocumentTypeDNI      DocumentType = "DNI"
	DocumentTypeRUC      DocumentType = "RUC"
	DocumentTypePassport DocumentType = "Pasaporte"
	DocumentTypeCedula   DocumentType = "Cedula"
	DocumentTypeOther    DocumentType = "Otro"
)

// Contact holds the personal data shared by clients, employees and suppliers.
// Each of those claims at most one contact (1:1).
type Contact struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	FullName       string        `json:"full_name" gorm:"size:255;not null"`
	CompanyName    *string       `json:"company_name,omitempty" gorm:"size:255"`
	Email          *string       `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	PhonePrimary   *string       `json:"phone_primary,omitempty" gorm:"size:20"`
	PhoneSecondary *string       `json:"phone_secondary,omitempty" gorm:"size:20"`
	Address        *string       `json:"address,omitempty" gorm:"size:500"`
	City           *string       `json:"city,omitempty" gorm:"size:100"`
	Country        *string       `json:"country,omitempty" gorm:"size:100"`
	DocumentType   *DocumentType `json:"document_type,omitempty" gorm:"size:20"`
	DocumentNumber *string       `json:"document_number,omitempty" gorm:"size:50"`
	RegisteredAt   time.Time     `json:"registered_at" gorm:"autoCreateTime"`
	Active         bool          `json:"active" gorm:"default:true"`
}
