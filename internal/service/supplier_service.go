package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateSupplierInput is the supplier creation payload.
type CreateSupplierInput struct {
	ContactID    uint    `json:"contact_id"`
	SupplierType *string `json:"supplier_type"`
}

// UpdateSupplierInput carries partial supplier updates.
type UpdateSupplierInput struct {
	ContactID    *uint   `json:"contact_id"`
	SupplierType *string `json:"supplier_type"`
}

// SupplierService manages vehicle and financing providers.
type SupplierService interface {
	Create(ctx context.Context, input CreateSupplierInput) (*model.Supplier, error)
	Update(ctx context.Context, id uint, input UpdateSupplierInput) (*model.Supplier, error)
	GetByID(ctx context.Context, id uint) (*model.Supplier, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Supplier, int64, error)
	ToggleActive(ctx context.Context, id uint) (*model.Supplier, error)
	Delete(ctx context.Context, id uint) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	contactRepo  repository.ContactRepository
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(supplierRepo repository.SupplierRepository, contactRepo repository.ContactRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, contactRepo: contactRepo}
}

func (s *supplierService) checkContact(ctx context.Context, contactID, excludeID uint) error {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindForeignKeyNotFound, "contact with id %d does not exist", contactID).WithField("contact_id")
		}
		return errors.Wrap("validate contact", err)
	}
	if !contact.Active {
		return errors.Ef(errors.KindValidation, "contact with id %d is inactive", contactID).WithField("contact_id")
	}

	if _, err := s.supplierRepo.FindByContactID(ctx, contactID, excludeID); err == nil {
		return errors.Ef(errors.KindDuplicate, "contact with id %d is already assigned to a supplier", contactID).WithField("contact_id")
	} else if err != gorm.ErrRecordNotFound {
		return errors.Wrap("check contact assignment", err)
	}
	return nil
}

func (s *supplierService) Create(ctx context.Context, input CreateSupplierInput) (*model.Supplier, error) {
	if err := s.checkContact(ctx, input.ContactID, 0); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		ContactID:    input.ContactID,
		SupplierType: input.SupplierType,
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, errors.Wrap("create supplier", err)
	}
	return s.supplierRepo.FindByID(ctx, supplier.ID)
}

func (s *supplierService) Update(ctx context.Context, id uint, input UpdateSupplierInput) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "supplier with id %d not found", id)
		}
		return nil, errors.Wrap("load supplier", err)
	}

	if input.ContactID != nil && *input.ContactID != supplier.ContactID {
		if err := s.checkContact(ctx, *input.ContactID, id); err != nil {
			return nil, err
		}
		supplier.ContactID = *input.ContactID
	}
	if input.SupplierType != nil {
		supplier.SupplierType = input.SupplierType
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, errors.Wrap("update supplier", err)
	}
	return s.supplierRepo.FindByID(ctx, id)
}

func (s *supplierService) GetByID(ctx context.Context, id uint) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "supplier with id %d not found", id)
		}
		return nil, errors.Wrap("load supplier", err)
	}
	return supplier, nil
}

func (s *supplierService) List(ctx context.Context, params repository.ListParams) ([]model.Supplier, int64, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap("list suppliers", err)
	}
	return suppliers, total, nil
}

func (s *supplierService) checkDependencies(ctx context.Context, id uint) error {
	acquisitions, err := s.supplierRepo.CountAcquisitions(ctx, id)
	if err != nil {
		return errors.Wrap("count supplier acquisitions", err)
	}
	if acquisitions > 0 {
		return errors.Ef(errors.KindDependencyExists, "supplier with id %d has %d acquisition(s)", id, acquisitions)
	}

	financings, err := s.supplierRepo.CountFinancings(ctx, id)
	if err != nil {
		return errors.Wrap("count supplier financings", err)
	}
	if financings > 0 {
		return errors.Ef(errors.KindDependencyExists, "supplier with id %d finances %d sale(s)", id, financings)
	}
	return nil
}

// ToggleActive flips the active flag. Deactivation follows the same
// dependency rules as Delete; reactivation requires the bound contact to be
// active itself.
func (s *supplierService) ToggleActive(ctx context.Context, id uint) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "supplier with id %d not found", id)
		}
		return nil, errors.Wrap("load supplier", err)
	}

	if supplier.Active {
		if err := s.checkDependencies(ctx, id); err != nil {
			return nil, err
		}
	} else {
		contact, err := s.contactRepo.FindByID(ctx, supplier.ContactID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.Ef(errors.KindValidation, "contact with id %d does not exist", supplier.ContactID).WithField("contact_id")
			}
			return nil, errors.Wrap("load contact", err)
		}
		if !contact.Active {
			return nil, errors.Ef(errors.KindValidation, "contact with id %d is inactive", supplier.ContactID).WithField("contact_id")
		}
	}

	supplier.Active = !supplier.Active
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, errors.Wrap("toggle supplier active flag", err)
	}
	return s.supplierRepo.FindByID(ctx, id)
}

// Delete deactivates the supplier. Suppliers referenced by acquisitions or
// financed sales cannot be removed.
func (s *supplierService) Delete(ctx context.Context, id uint) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "supplier with id %d not found", id)
		}
		return errors.Wrap("load supplier", err)
	}

	if err := s.checkDependencies(ctx, id); err != nil {
		return err
	}

	supplier.Active = false
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return errors.Wrap("deactivate supplier", err)
	}
	return nil
}
