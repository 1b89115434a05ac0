package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateInvoiceInput is the invoice creation payload.
type CreateInvoiceInput struct {
	SaleID           uint            `json:"sale_id"`
	Number           string          `json:"number"`
	DueDate          *time.Time      `json:"due_date"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Taxes            decimal.Decimal `json:"taxes"`
	PaymentMethod    *string         `json:"payment_method"`
	PaymentReference *string         `json:"payment_reference"`
	Notes            *string         `json:"notes"`
}

// UpdateInvoiceInput carries partial invoice updates. The sale reference,
// number and amounts are fixed at issue time.
type UpdateInvoiceInput struct {
	DueDate          *time.Time           `json:"due_date"`
	Status           *model.InvoiceStatus `json:"status"`
	PaymentMethod    *string              `json:"payment_method"`
	PaymentReference *string              `json:"payment_reference"`
	Notes            *string              `json:"notes"`
}

// InvoiceService issues and settles invoices. Issuing an invoice flips its
// sale to Facturada in the same transaction; voiding one returns the sale
// to Completada.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*model.Invoice, error)
	Update(ctx context.Context, id uint, input UpdateInvoiceInput) (*model.Invoice, error)
	Void(ctx context.Context, id uint) (*model.Invoice, error)
	GetByID(ctx context.Context, id uint) (*model.Invoice, error)
	List(ctx context.Context, params repository.ListParams, status model.InvoiceStatus) ([]model.Invoice, int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	saleRepo    repository.SaleRepository
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, saleRepo repository.SaleRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo, saleRepo: saleRepo}
}

// Create issues the invoice for a completed sale. The total is always
// subtotal plus taxes; client-supplied totals are ignored.
func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*model.Invoice, error) {
	if input.Number == "" {
		return nil, errors.E(errors.KindValidation, "invoice number is required").WithField("number")
	}
	if input.Subtotal.IsNegative() {
		return nil, errors.E(errors.KindValidation, "subtotal must not be negative").WithField("subtotal")
	}
	if input.Taxes.IsNegative() {
		return nil, errors.E(errors.KindValidation, "taxes must not be negative").WithField("taxes")
	}

	sale, err := s.saleRepo.FindByID(ctx, input.SaleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindForeignKeyNotFound, "sale with id %d does not exist", input.SaleID).WithField("sale_id")
		}
		return nil, errors.Wrap("load sale", err)
	}
	if sale.Status == model.SaleStatusCancelled {
		return nil, errors.E(errors.KindValidation, "cancelled sales cannot be invoiced").WithField("sale_id")
	}

	if _, err := s.invoiceRepo.FindBySaleID(ctx, input.SaleID); err == nil {
		return nil, errors.Ef(errors.KindDuplicate, "sale with id %d already has an invoice", input.SaleID).WithField("sale_id")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.Wrap("check existing invoice", err)
	}

	if _, err := s.invoiceRepo.FindByNumber(ctx, input.Number); err == nil {
		return nil, errors.Ef(errors.KindDuplicate, "invoice number %q is already in use", input.Number).WithField("number")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.Wrap("check invoice number", err)
	}

	invoice := &model.Invoice{
		SaleID:           input.SaleID,
		Number:           input.Number,
		DueDate:          input.DueDate,
		Subtotal:         input.Subtotal,
		Taxes:            input.Taxes,
		Total:            input.Subtotal.Add(input.Taxes),
		Status:           model.InvoiceStatusPending,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
		Notes:            input.Notes,
	}

	err = s.invoiceRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.InvoiceRepository) error {
		if err := txRepo.Create(ctx, invoice); err != nil {
			return errors.Wrap("create invoice", err)
		}
		if err := txRepo.UpdateSaleStatus(ctx, input.SaleID, model.SaleStatusInvoiced); err != nil {
			return errors.Wrap("mark sale invoiced", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// Update applies settlement changes. Voided invoices are immutable and
// voiding must go through Void so the sale status is restored.
func (s *invoiceService) Update(ctx context.Context, id uint, input UpdateInvoiceInput) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "invoice with id %d not found", id)
		}
		return nil, errors.Wrap("load invoice", err)
	}

	if invoice.Status == model.InvoiceStatusVoided {
		return nil, errors.E(errors.KindValidation, "voided invoices cannot be modified")
	}
	if input.Status != nil {
		if !model.ValidInvoiceStatus(*input.Status) {
			return nil, errors.Ef(errors.KindValidation, "unknown invoice status %q", *input.Status).WithField("status")
		}
		if *input.Status == model.InvoiceStatusVoided {
			return nil, errors.E(errors.KindValidation, "use the void endpoint to void an invoice").WithField("status")
		}
		invoice.Status = *input.Status
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.PaymentMethod != nil {
		invoice.PaymentMethod = input.PaymentMethod
	}
	if input.PaymentReference != nil {
		invoice.PaymentReference = input.PaymentReference
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, errors.Wrap("update invoice", err)
	}
	return invoice, nil
}

// Void annuls the invoice and moves its sale back to Completada so it can
// be re-invoiced or cancelled.
func (s *invoiceService) Void(ctx context.Context, id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "invoice with id %d not found", id)
		}
		return nil, errors.Wrap("load invoice", err)
	}

	if invoice.Status == model.InvoiceStatusVoided {
		return nil, errors.E(errors.KindValidation, "invoice is already voided")
	}

	err = s.invoiceRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.InvoiceRepository) error {
		invoice.Status = model.InvoiceStatusVoided
		if err := txRepo.Update(ctx, invoice); err != nil {
			return errors.Wrap("void invoice", err)
		}
		if err := txRepo.UpdateSaleStatus(ctx, invoice.SaleID, model.SaleStatusCompleted); err != nil {
			return errors.Wrap("restore sale status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "invoice with id %d not found", id)
		}
		return nil, errors.Wrap("load invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, params repository.ListParams, status model.InvoiceStatus) ([]model.Invoice, int64, error) {
	if status != "" && !model.ValidInvoiceStatus(status) {
		return nil, 0, errors.Ef(errors.KindValidation, "unknown invoice status %q", status).WithField("status")
	}
	invoices, total, err := s.invoiceRepo.List(ctx, params, status)
	if err != nil {
		return nil, 0, errors.Wrap("list invoices", err)
	}
	return invoices, total, nil
}
