package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateSaleInput is the sale creation payload.
type CreateSaleInput struct {
	VehicleID         uint               `json:"vehicle_id"`
	ClientID          uint               `json:"client_id"`
	SellerID          uint               `json:"seller_id"`
	FinalPrice        decimal.Decimal    `json:"final_price"`
	Taxes             *decimal.Decimal   `json:"taxes"`
	Discount          *decimal.Decimal   `json:"discount"`
	PaymentType       *model.PaymentType `json:"payment_type"`
	FinancingEntityID *uint              `json:"financing_entity_id"`
	Notes             *string            `json:"notes"`
}

// UpdateSaleInput carries partial sale updates. Party and vehicle references
// are fixed at creation and cannot change here.
type UpdateSaleInput struct {
	FinalPrice  *decimal.Decimal   `json:"final_price"`
	Taxes       *decimal.Decimal   `json:"taxes"`
	Discount    *decimal.Decimal   `json:"discount"`
	PaymentType *model.PaymentType `json:"payment_type"`
	Status      *model.SaleStatus  `json:"status"`
	Notes       *string            `json:"notes"`
}

// SaleService manages the sale lifecycle. Creating a sale marks the vehicle
// Vendido and cancelling one returns it to Disponible, in each case within
// the same transaction as the sale write.
type SaleService interface {
	Create(ctx context.Context, input CreateSaleInput) (*model.Sale, error)
	Update(ctx context.Context, id uint, input UpdateSaleInput) (*model.Sale, error)
	Cancel(ctx context.Context, id uint) (*model.Sale, error)
	GetByID(ctx context.Context, id uint) (*model.Sale, error)
	List(ctx context.Context, params repository.ListParams, status model.SaleStatus) ([]model.Sale, int64, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	vehicleRepo  repository.VehicleRepository
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
	supplierRepo repository.SupplierRepository
}

// NewSaleService creates a new sale service.
func NewSaleService(
	saleRepo repository.SaleRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	employeeRepo repository.EmployeeRepository,
	supplierRepo repository.SupplierRepository,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		vehicleRepo:  vehicleRepo,
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		supplierRepo: supplierRepo,
	}
}

func (s *saleService) validateParties(ctx context.Context, input CreateSaleInput) error {
	client, err := s.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindForeignKeyNotFound, "client with id %d does not exist", input.ClientID).WithField("client_id")
		}
		return errors.Wrap("validate client", err)
	}
	if !client.Active {
		return errors.Ef(errors.KindValidation, "client with id %d is inactive", input.ClientID).WithField("client_id")
	}

	seller, err := s.employeeRepo.FindByID(ctx, input.SellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindForeignKeyNotFound, "employee with id %d does not exist", input.SellerID).WithField("seller_id")
		}
		return errors.Wrap("validate seller", err)
	}
	if !seller.Active {
		return errors.Ef(errors.KindValidation, "employee with id %d is inactive", input.SellerID).WithField("seller_id")
	}

	if input.FinancingEntityID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *input.FinancingEntityID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.Ef(errors.KindForeignKeyNotFound, "supplier with id %d does not exist", *input.FinancingEntityID).WithField("financing_entity_id")
			}
			return errors.Wrap("validate financing entity", err)
		}
	}
	return nil
}

// Create records the sale and marks the vehicle Vendido in one transaction.
// Only vehicles that are Disponible or Reservado can be sold.
func (s *saleService) Create(ctx context.Context, input CreateSaleInput) (*model.Sale, error) {
	if input.FinalPrice.IsNegative() {
		return nil, errors.E(errors.KindValidation, "final price must not be negative").WithField("final_price")
	}
	if input.Taxes != nil && input.Taxes.IsNegative() {
		return nil, errors.E(errors.KindValidation, "taxes must not be negative").WithField("taxes")
	}
	if input.Discount != nil && input.Discount.IsNegative() {
		return nil, errors.E(errors.KindValidation, "discount must not be negative").WithField("discount")
	}
	if input.PaymentType != nil && !model.ValidPaymentType(*input.PaymentType) {
		return nil, errors.Ef(errors.KindValidation, "unknown payment type %q", *input.PaymentType).WithField("payment_type")
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, input.VehicleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindForeignKeyNotFound, "vehicle with id %d does not exist", input.VehicleID).WithField("vehicle_id")
		}
		return nil, errors.Wrap("validate vehicle", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return nil, errors.Ef(errors.KindAlreadySold, "vehicle with id %d has already been sold", input.VehicleID)
	}
	if vehicle.Status != model.VehicleStatusAvailable && vehicle.Status != model.VehicleStatusReserved {
		return nil, errors.Ef(errors.KindValidation, "vehicle with id %d is not for sale (status %s)", input.VehicleID, vehicle.Status).WithField("vehicle_id")
	}

	if err := s.validateParties(ctx, input); err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if input.Discount != nil {
		discount = *input.Discount
	}

	sale := &model.Sale{
		VehicleID:         input.VehicleID,
		ClientID:          input.ClientID,
		SellerID:          input.SellerID,
		FinalPrice:        input.FinalPrice,
		Taxes:             input.Taxes,
		Discount:          discount,
		PaymentType:       input.PaymentType,
		FinancingEntityID: input.FinancingEntityID,
		Status:            model.SaleStatusPending,
		Notes:             input.Notes,
	}

	err = s.saleRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.SaleRepository) error {
		if err := txRepo.Create(ctx, sale); err != nil {
			return errors.Wrap("create sale", err)
		}
		if err := txRepo.UpdateVehicleStatus(ctx, input.VehicleID, model.VehicleStatusSold); err != nil {
			return errors.Wrap("mark vehicle sold", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.FindByIDFull(ctx, sale.ID)
}

// Update applies partial changes to a sale. Cancelled sales are immutable
// and cancellation must go through Cancel so the vehicle is released.
func (s *saleService) Update(ctx context.Context, id uint, input UpdateSaleInput) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "sale with id %d not found", id)
		}
		return nil, errors.Wrap("load sale", err)
	}

	if sale.Status == model.SaleStatusCancelled {
		return nil, errors.E(errors.KindValidation, "cancelled sales cannot be modified")
	}
	if input.Status != nil {
		if !model.ValidSaleStatus(*input.Status) {
			return nil, errors.Ef(errors.KindValidation, "unknown sale status %q", *input.Status).WithField("status")
		}
		if *input.Status == model.SaleStatusCancelled {
			return nil, errors.E(errors.KindValidation, "use the cancellation endpoint to cancel a sale").WithField("status")
		}
		sale.Status = *input.Status
	}
	if input.FinalPrice != nil {
		if input.FinalPrice.IsNegative() {
			return nil, errors.E(errors.KindValidation, "final price must not be negative").WithField("final_price")
		}
		sale.FinalPrice = *input.FinalPrice
	}
	if input.Taxes != nil {
		sale.Taxes = input.Taxes
	}
	if input.Discount != nil {
		sale.Discount = *input.Discount
	}
	if input.PaymentType != nil {
		if !model.ValidPaymentType(*input.PaymentType) {
			return nil, errors.Ef(errors.KindValidation, "unknown payment type %q", *input.PaymentType).WithField("payment_type")
		}
		sale.PaymentType = input.PaymentType
	}
	if input.Notes != nil {
		sale.Notes = input.Notes
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, errors.Wrap("update sale", err)
	}
	return s.saleRepo.FindByIDFull(ctx, id)
}

// Cancel voids a pending or completed sale and returns the vehicle to
// Disponible. Invoiced sales must have their invoice voided first.
func (s *saleService) Cancel(ctx context.Context, id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "sale with id %d not found", id)
		}
		return nil, errors.Wrap("load sale", err)
	}

	if sale.Status == model.SaleStatusCancelled {
		return nil, errors.E(errors.KindValidation, "sale is already cancelled")
	}
	if sale.Status == model.SaleStatusInvoiced {
		return nil, errors.E(errors.KindDependencyExists, "sale has an invoice and cannot be cancelled")
	}

	err = s.saleRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.SaleRepository) error {
		sale.Status = model.SaleStatusCancelled
		if err := txRepo.Update(ctx, sale); err != nil {
			return errors.Wrap("cancel sale", err)
		}
		if err := txRepo.UpdateVehicleStatus(ctx, sale.VehicleID, model.VehicleStatusAvailable); err != nil {
			return errors.Wrap("release vehicle", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.FindByIDFull(ctx, id)
}

func (s *saleService) GetByID(ctx context.Context, id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByIDFull(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "sale with id %d not found", id)
		}
		return nil, errors.Wrap("load sale", err)
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, params repository.ListParams, status model.SaleStatus) ([]model.Sale, int64, error) {
	if status != "" && !model.ValidSaleStatus(status) {
		return nil, 0, errors.Ef(errors.KindValidation, "unknown sale status %q", status).WithField("status")
	}
	sales, total, err := s.saleRepo.List(ctx, params, status)
	if err != nil {
		return nil, 0, errors.Wrap("list sales", err)
	}
	return sales, total, nil
}
