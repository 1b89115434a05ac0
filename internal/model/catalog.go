package model

// Brand is a vehicle make.
type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

// VehicleModel is a model belonging to a Brand.
type VehicleModel struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	BrandID uint   `json:"brand_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"size:100;not null"`

	Brand Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

// Color is a paint color reference row.
type Color struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}

// FuelType is a fuel reference row.
type FuelType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}

// TransmissionType is a transmission reference row.
type TransmissionType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}

// Feature is an optional characteristic a vehicle may carry.
type Feature struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description *string `json:"description,omitempty" gorm:"size:255"`
}
