package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks invoice settlement.
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "Pendiente"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Pagada Parcialmente"
	InvoiceStatusPaid          InvoiceStatus = "Pagada Totalmente"
	InvoiceStatusOverdue       InvoiceStatus = "Vencida"
	InvoiceStatusVoided        InvoiceStatus = "Anulada"
)

// ValidInvoiceStatus reports whether s is a known invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusVoided:
		return true
	}
	return false
}

// Invoice is the 1:1 billing document of a sale.
type Invoice struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	SaleID           uint            `json:"sale_id" gorm:"uniqueIndex;not null"`
	Number           string          `json:"number" gorm:"uniqueIndex;size:50;not null"`
	IssuedAt         time.Time       `json:"issued_at" gorm:"autoCreateTime"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal" gorm:"type:decimal(14,2);not null"`
	Taxes            decimal.Decimal `json:"taxes" gorm:"type:decimal(12,2);not null"`
	Total            decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	Status           InvoiceStatus   `json:"status" gorm:"size:30;not null;default:'Pendiente';index"`
	PaymentMethod    *string         `json:"payment_method,omitempty" gorm:"size:100"`
	PaymentReference *string         `json:"payment_reference,omitempty" gorm:"size:100"`
	Notes            *string         `json:"notes,omitempty" gorm:"type:text"`
}
