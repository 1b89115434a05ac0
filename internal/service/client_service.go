package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateClientInput is the client creation payload.
type CreateClientInput struct {
	ContactID uint    `json:"contact_id"`
	Notes     *string `json:"notes"`
}

// UpdateClientInput carries partial client updates. The contact binding can
// be moved to another free contact. The active flag is managed exclusively
// through ToggleActive so its dependency rules cannot be bypassed.
type UpdateClientInput struct {
	ContactID *uint   `json:"contact_id"`
	Notes     *string `json:"notes"`
}

// ClientService manages dealership customers.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*model.Client, error)
	Update(ctx context.Context, id uint, input UpdateClientInput) (*model.Client, error)
	GetByID(ctx context.Context, id uint) (*model.Client, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Client, int64, error)
	ToggleActive(ctx context.Context, id uint) (*model.Client, error)
	Delete(ctx context.Context, id uint) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	contactRepo repository.ContactRepository
}

// NewClientService creates a new client service.
func NewClientService(clientRepo repository.ClientRepository, contactRepo repository.ContactRepository) ClientService {
	return &clientService{clientRepo: clientRepo, contactRepo: contactRepo}
}

// checkContact verifies the contact exists, is active and is not already
// bound to a different client.
func (s *clientService) checkContact(ctx context.Context, contactID, excludeID uint) error {
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

	if _, err := s.clientRepo.FindByContactID(ctx, contactID, excludeID); err == nil {
		return errors.Ef(errors.KindDuplicate, "contact with id %d is already assigned to a client", contactID).WithField("contact_id")
	} else if err != gorm.ErrRecordNotFound {
		return errors.Wrap("check contact assignment", err)
	}
	return nil
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*model.Client, error) {
	if err := s.checkContact(ctx, input.ContactID, 0); err != nil {
		return nil, err
	}

	client := &model.Client{
		ContactID:    input.ContactID,
		Notes:        input.Notes,
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, errors.Wrap("create client", err)
	}
	return s.clientRepo.FindByID(ctx, client.ID)
}

func (s *clientService) Update(ctx context.Context, id uint, input UpdateClientInput) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "client with id %d not found", id)
		}
		return nil, errors.Wrap("load client", err)
	}

	if input.ContactID != nil && *input.ContactID != client.ContactID {
		if err := s.checkContact(ctx, *input.ContactID, id); err != nil {
			return nil, err
		}
		client.ContactID = *input.ContactID
	}
	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, errors.Wrap("update client", err)
	}
	return s.clientRepo.FindByID(ctx, id)
}

func (s *clientService) GetByID(ctx context.Context, id uint) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "client with id %d not found", id)
		}
		return nil, errors.Wrap("load client", err)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, params repository.ListParams) ([]model.Client, int64, error) {
	clients, total, err := s.clientRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap("list clients", err)
	}
	return clients, total, nil
}

// checkDependencies rejects deactivation of a client that is part of
// transaction history.
func (s *clientService) checkDependencies(ctx context.Context, id uint) error {
	sales, err := s.clientRepo.CountSales(ctx, id)
	if err != nil {
		return errors.Wrap("count client sales", err)
	}
	if sales > 0 {
		return errors.Ef(errors.KindDependencyExists, "client with id %d has %d recorded sale(s)", id, sales)
	}

	tradeIns, err := s.clientRepo.CountTradeIns(ctx, id)
	if err != nil {
		return errors.Wrap("count client trade-ins", err)
	}
	if tradeIns > 0 {
		return errors.Ef(errors.KindDependencyExists, "client with id %d has %d trade-in acquisition(s)", id, tradeIns)
	}
	return nil
}

// ToggleActive flips the active flag. Deactivation follows the same
// dependency rules as Delete; reactivation requires the bound contact to be
// active itself.
func (s *clientService) ToggleActive(ctx context.Context, id uint) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "client with id %d not found", id)
		}
		return nil, errors.Wrap("load client", err)
	}

	if client.Active {
		if err := s.checkDependencies(ctx, id); err != nil {
			return nil, err
		}
	} else {
		contact, err := s.contactRepo.FindByID(ctx, client.ContactID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.Ef(errors.KindValidation, "contact with id %d does not exist", client.ContactID).WithField("contact_id")
			}
			return nil, errors.Wrap("load contact", err)
		}
		if !contact.Active {
			return nil, errors.Ef(errors.KindValidation, "contact with id %d is inactive", client.ContactID).WithField("contact_id")
		}
	}

	client.Active = !client.Active
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, errors.Wrap("toggle client active flag", err)
	}
	return s.clientRepo.FindByID(ctx, id)
}

// Delete deactivates the client. Clients with recorded sales or trade-in
// acquisitions are part of transaction history and cannot be removed.
func (s *clientService) Delete(ctx context.Context, id uint) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "client with id %d not found", id)
		}
		return errors.Wrap("load client", err)
	}

	if err := s.checkDependencies(ctx, id); err != nil {
		return err
	}

	client.Active = false
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return errors.Wrap("deactivate client", err)
	}
	return nil
}
