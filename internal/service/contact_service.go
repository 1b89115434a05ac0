package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateContactInput is the contact creation payload.
type CreateContactInput struct {
	FullName       string              `json:"full_name"`
	CompanyName    *string             `json:"company_name"`
	Email          *string             `json:"email"`
	PhonePrimary   *string             `json:"phone_primary"`
	PhoneSecondary *string             `json:"phone_secondary"`
	Address        *string             `json:"address"`
	City           *string             `json:"city"`
	Country        *string             `json:"country"`
	DocumentType   *model.DocumentType `json:"document_type"`
	DocumentNumber *string             `json:"document_number"`
}

// UpdateContactInput carries partial contact updates.
type UpdateContactInput struct {
	FullName       *string             `json:"full_name"`
	CompanyName    *string             `json:"company_name"`
	Email          *string             `json:"email"`
	PhonePrimary   *string             `json:"phone_primary"`
	PhoneSecondary *string             `json:"phone_secondary"`
	Address        *string             `json:"address"`
	City           *string             `json:"city"`
	Country        *string             `json:"country"`
	DocumentType   *model.DocumentType `json:"document_type"`
	DocumentNumber *string             `json:"document_number"`
}

// ContactService manages the shared contact records behind clients,
// employees and suppliers.
type ContactService interface {
	Create(ctx context.Context, input CreateContactInput) (*model.Contact, error)
	Update(ctx context.Context, id uint, input UpdateContactInput) (*model.Contact, error)
	GetByID(ctx context.Context, id uint) (*model.Contact, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Contact, int64, error)
	ToggleActive(ctx context.Context, id uint) (*model.Contact, error)
	Delete(ctx context.Context, id uint) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func validDocumentType(t model.DocumentType) bool {
	switch t {
	case model.DocumentTypeDNI, model.DocumentTypeRUC, model.DocumentTypePassport,
		model.DocumentTypeCedula, model.DocumentTypeOther:
		return true
	}
	return false
}

func (s *contactService) checkEmailFree(ctx context.Context, email string, excludeID uint) error {
	existing, err := s.contactRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return errors.Wrap("check contact email", err)
	}
	if existing.ID != excludeID {
		return errors.Ef(errors.KindDuplicate, "email %q is already in use", email).WithField("email")
	}
	return nil
}

func (s *contactService) Create(ctx context.Context, input CreateContactInput) (*model.Contact, error) {
	if input.FullName == "" {
		return nil, errors.E(errors.KindValidation, "full name is required").WithField("full_name")
	}
	if input.DocumentType != nil && !validDocumentType(*input.DocumentType) {
		return nil, errors.Ef(errors.KindValidation, "unknown document type %q", *input.DocumentType).WithField("document_type")
	}
	if input.Email != nil && *input.Email != "" {
		if err := s.checkEmailFree(ctx, *input.Email, 0); err != nil {
			return nil, err
		}
	}

	contact := &model.Contact{
		FullName:       input.FullName,
		CompanyName:    input.CompanyName,
		Email:          input.Email,
		PhonePrimary:   input.PhonePrimary,
		PhoneSecondary: input.PhoneSecondary,
		Address:        input.Address,
		City:           input.City,
		Country:        input.Country,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		RegisteredAt:   time.Now(),
		Active:         true,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap("create contact", err)
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, id uint, input UpdateContactInput) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "contact with id %d not found", id)
		}
		return nil, errors.Wrap("load contact", err)
	}

	if input.DocumentType != nil && !validDocumentType(*input.DocumentType) {
		return nil, errors.Ef(errors.KindValidation, "unknown document type %q", *input.DocumentType).WithField("document_type")
	}
	if input.Email != nil && *input.Email != "" {
		if err := s.checkEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, errors.E(errors.KindValidation, "full name must not be empty").WithField("full_name")
		}
		contact.FullName = *input.FullName
	}
	if input.CompanyName != nil {
		contact.CompanyName = input.CompanyName
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.PhonePrimary != nil {
		contact.PhonePrimary = input.PhonePrimary
	}
	if input.PhoneSecondary != nil {
		contact.PhoneSecondary = input.PhoneSecondary
	}
	if input.Address != nil {
		contact.Address = input.Address
	}
	if input.City != nil {
		contact.City = input.City
	}
	if input.Country != nil {
		contact.Country = input.Country
	}
	if input.DocumentType != nil {
		contact.DocumentType = input.DocumentType
	}
	if input.DocumentNumber != nil {
		contact.DocumentNumber = input.DocumentNumber
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, errors.Wrap("update contact", err)
	}
	return contact, nil
}

func (s *contactService) GetByID(ctx context.Context, id uint) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "contact with id %d not found", id)
		}
		return nil, errors.Wrap("load contact", err)
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, params repository.ListParams) ([]model.Contact, int64, error) {
	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap("list contacts", err)
	}
	return contacts, total, nil
}

func (s *contactService) checkDependencies(ctx context.Context, id uint) error {
	dependents, err := s.contactRepo.CountDependents(ctx, id)
	if err != nil {
		return errors.Wrap("count contact dependents", err)
	}
	if dependents > 0 {
		return errors.Ef(errors.KindDependencyExists, "contact with id %d is in use by %d record(s)", id, dependents)
	}
	return nil
}

// ToggleActive flips the active flag. A contact still backing a client,
// employee or supplier cannot be deactivated; reactivation has no
// preconditions.
func (s *contactService) ToggleActive(ctx context.Context, id uint) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "contact with id %d not found", id)
		}
		return nil, errors.Wrap("load contact", err)
	}

	if contact.Active {
		if err := s.checkDependencies(ctx, id); err != nil {
			return nil, err
		}
	}

	contact.Active = !contact.Active
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, errors.Wrap("toggle contact active flag", err)
	}
	return contact, nil
}

// Delete deactivates the contact. A contact still backing an active client,
// employee or supplier cannot be deactivated.
func (s *contactService) Delete(ctx context.Context, id uint) error {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "contact with id %d not found", id)
		}
		return errors.Wrap("load contact", err)
	}

	if err := s.checkDependencies(ctx, id); err != nil {
		return err
	}

	contact.Active = false
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return errors.Wrap("deactivate contact", err)
	}
	return nil
}
