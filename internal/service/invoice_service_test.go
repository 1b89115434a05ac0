package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

func validCreateInvoiceInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		SaleID:   9,
		Number:   "INV-2025-0001",
		Subtotal: decimal.NewFromInt(20000),
		Taxes:    decimal.NewFromInt(3800),
	}
}

func TestInvoiceService_Create(t *testing.T) {
	t.Run("issues the invoice and marks the sale invoiced", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockSales := new(MockSaleRepository)

		mockSales.On("FindByID", mock.Anything, uint(9)).Return(&model.Sale{
			ID:     9,
			Status: model.SaleStatusCompleted,
		}, nil)
		mockInvoices.On("FindBySaleID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
		mockInvoices.On("FindByNumber", mock.Anything, "INV-2025-0001").Return(nil, gorm.ErrRecordNotFound)
		mockInvoices.On("WithTransaction", mock.Anything).Return(nil)
		mockInvoices.On("Create", mock.Anything, mock.AnythingOfType("*model.Invoice")).Return(nil)
		mockInvoices.On("UpdateSaleStatus", mock.Anything, uint(9), model.SaleStatusInvoiced).Return(nil)

		svc := NewInvoiceService(mockInvoices, mockSales)

		invoice, err := svc.Create(context.Background(), validCreateInvoiceInput())
		assert.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusPending, invoice.Status)
		assert.True(t, invoice.Total.Equal(decimal.NewFromInt(23800)), "total must be subtotal plus taxes")
		mockInvoices.AssertExpectations(t)
	})

	t.Run("a sale can only carry one invoice", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockSales := new(MockSaleRepository)

		mockSales.On("FindByID", mock.Anything, uint(9)).Return(&model.Sale{
			ID:     9,
			Status: model.SaleStatusCompleted,
		}, nil)
		mockInvoices.On("FindBySaleID", mock.Anything, uint(9)).Return(&model.Invoice{ID: 4, SaleID: 9}, nil)

		svc := NewInvoiceService(mockInvoices, mockSales)

		_, err := svc.Create(context.Background(), validCreateInvoiceInput())
		assert.Equal(t, errors.KindDuplicate, errors.KindOf(err))
		mockInvoices.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("invoice numbers are unique", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockSales := new(MockSaleRepository)

		mockSales.On("FindByID", mock.Anything, uint(9)).Return(&model.Sale{
			ID:     9,
			Status: model.SaleStatusCompleted,
		}, nil)
		mockInvoices.On("FindBySaleID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
		mockInvoices.On("FindByNumber", mock.Anything, "INV-2025-0001").Return(&model.Invoice{ID: 4}, nil)

		svc := NewInvoiceService(mockInvoices, mockSales)

		_, err := svc.Create(context.Background(), validCreateInvoiceInput())
		assert.Equal(t, errors.KindDuplicate, errors.KindOf(err))

		var de *errors.Error
		assert.ErrorAs(t, err, &de)
		assert.Equal(t, "number", de.Field)
	})

	t.Run("cancelled sales cannot be invoiced", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockSales := new(MockSaleRepository)

		mockSales.On("FindByID", mock.Anything, uint(9)).Return(&model.Sale{
			ID:     9,
			Status: model.SaleStatusCancelled,
		}, nil)

		svc := NewInvoiceService(mockInvoices, mockSales)

		_, err := svc.Create(context.Background(), validCreateInvoiceInput())
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	})

	t.Run("unknown sale", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockSales := new(MockSaleRepository)
		mockSales.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInvoiceService(mockInvoices, mockSales)

		_, err := svc.Create(context.Background(), validCreateInvoiceInput())
		assert.Equal(t, errors.KindForeignKeyNotFound, errors.KindOf(err))
	})
}

func TestInvoiceService_Void(t *testing.T) {
	t.Run("voiding restores the sale to completed", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)

		mockInvoices.On("FindByID", mock.Anything, uint(4)).Return(&model.Invoice{
			ID:     4,
			SaleID: 9,
			Status: model.InvoiceStatusPending,
		}, nil)
		mockInvoices.On("WithTransaction", mock.Anything).Return(nil)
		mockInvoices.On("Update", mock.Anything, mock.MatchedBy(func(invoice *model.Invoice) bool {
			return invoice.Status == model.InvoiceStatusVoided
		})).Return(nil)
		mockInvoices.On("UpdateSaleStatus", mock.Anything, uint(9), model.SaleStatusCompleted).Return(nil)

		svc := NewInvoiceService(mockInvoices, new(MockSaleRepository))

		invoice, err := svc.Void(context.Background(), 4)
		assert.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusVoided, invoice.Status)
		mockInvoices.AssertExpectations(t)
	})

	t.Run("voiding twice fails", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(4)).Return(&model.Invoice{
			ID:     4,
			Status: model.InvoiceStatusVoided,
		}, nil)

		svc := NewInvoiceService(mockInvoices, new(MockSaleRepository))

		_, err := svc.Void(context.Background(), 4)
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		mockInvoices.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})
}

func TestInvoiceService_Update(t *testing.T) {
	t.Run("voided invoices are immutable", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(4)).Return(&model.Invoice{
			ID:     4,
			Status: model.InvoiceStatusVoided,
		}, nil)

		svc := NewInvoiceService(mockInvoices, new(MockSaleRepository))

		notes := "late edit"
		_, err := svc.Update(context.Background(), 4, UpdateInvoiceInput{Notes: &notes})
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	})

	t.Run("voiding must go through the void operation", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(4)).Return(&model.Invoice{
			ID:     4,
			Status: model.InvoiceStatusPending,
		}, nil)

		svc := NewInvoiceService(mockInvoices, new(MockSaleRepository))

		voided := model.InvoiceStatusVoided
		_, err := svc.Update(context.Background(), 4, UpdateInvoiceInput{Status: &voided})
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		mockInvoices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_List(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	svc := NewInvoiceService(mockInvoices, new(MockSaleRepository))

	_, _, err := svc.List(context.Background(), repository.ListParams{Page: 1, Limit: 10}, model.InvoiceStatus("No Existe"))
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	mockInvoices.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
