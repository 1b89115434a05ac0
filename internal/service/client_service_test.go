package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
)

func TestClientService_Create(t *testing.T) {
	t.Run("binds a free active contact", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)

		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(&model.Contact{ID: 5, Active: true}, nil)
		mockClients.On("FindByContactID", mock.Anything, uint(5), uint(0)).Return(nil, gorm.ErrRecordNotFound)
		mockClients.On("Create", mock.Anything, mock.MatchedBy(func(client *model.Client) bool {
			return client.ContactID == 5 && client.Active
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Client).ID = 3
		}).Return(nil)
		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, ContactID: 5, Active: true}, nil)

		svc := NewClientService(mockClients, mockContacts)

		client, err := svc.Create(context.Background(), CreateClientInput{ContactID: 5})
		assert.NoError(t, err)
		assert.Equal(t, uint(3), client.ID)
		mockClients.AssertExpectations(t)
	})

	t.Run("rejects an unknown contact", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)
		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewClientService(mockClients, mockContacts)

		_, err := svc.Create(context.Background(), CreateClientInput{ContactID: 5})
		assert.Equal(t, errors.KindForeignKeyNotFound, errors.KindOf(err))
	})

	t.Run("rejects an inactive contact", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)
		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(&model.Contact{ID: 5, Active: false}, nil)

		svc := NewClientService(mockClients, mockContacts)

		_, err := svc.Create(context.Background(), CreateClientInput{ContactID: 5})
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	})

	t.Run("rejects a contact already bound to another client", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)

		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(&model.Contact{ID: 5, Active: true}, nil)
		mockClients.On("FindByContactID", mock.Anything, uint(5), uint(0)).Return(&model.Client{ID: 8, ContactID: 5}, nil)

		svc := NewClientService(mockClients, mockContacts)

		_, err := svc.Create(context.Background(), CreateClientInput{ContactID: 5})
		assert.Equal(t, errors.KindDuplicate, errors.KindOf(err))
		mockClients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestClientService_Delete(t *testing.T) {
	t.Run("deactivates a client with no history", func(t *testing.T) {
		mockClients := new(MockClientRepository)

		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, Active: true}, nil)
		mockClients.On("CountSales", mock.Anything, uint(3)).Return(int64(0), nil)
		mockClients.On("CountTradeIns", mock.Anything, uint(3)).Return(int64(0), nil)
		mockClients.On("Update", mock.Anything, mock.MatchedBy(func(client *model.Client) bool {
			return !client.Active
		})).Return(nil)

		svc := NewClientService(mockClients, new(MockContactRepository))

		assert.NoError(t, svc.Delete(context.Background(), 3))
		mockClients.AssertExpectations(t)
	})

	t.Run("clients with sales stay in the books", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, Active: true}, nil)
		mockClients.On("CountSales", mock.Anything, uint(3)).Return(int64(2), nil)

		svc := NewClientService(mockClients, new(MockContactRepository))

		err := svc.Delete(context.Background(), 3)
		assert.Equal(t, errors.KindDependencyExists, errors.KindOf(err))
		mockClients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("clients with trade-ins stay in the books", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, Active: true}, nil)
		mockClients.On("CountSales", mock.Anything, uint(3)).Return(int64(0), nil)
		mockClients.On("CountTradeIns", mock.Anything, uint(3)).Return(int64(1), nil)

		svc := NewClientService(mockClients, new(MockContactRepository))

		err := svc.Delete(context.Background(), 3)
		assert.Equal(t, errors.KindDependencyExists, errors.KindOf(err))
	})

	t.Run("missing client", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockClients.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewClientService(mockClients, new(MockContactRepository))

		err := svc.Delete(context.Background(), 404)
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestClientService_ToggleActive(t *testing.T) {
	t.Run("deactivates a client with no history", func(t *testing.T) {
		mockClients := new(MockClientRepository)

		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, ContactID: 5, Active: true}, nil)
		mockClients.On("CountSales", mock.Anything, uint(3)).Return(int64(0), nil)
		mockClients.On("CountTradeIns", mock.Anything, uint(3)).Return(int64(0), nil)
		mockClients.On("Update", mock.Anything, mock.MatchedBy(func(client *model.Client) bool {
			return !client.Active
		})).Return(nil)

		svc := NewClientService(mockClients, new(MockContactRepository))

		client, err := svc.ToggleActive(context.Background(), 3)
		assert.NoError(t, err)
		assert.False(t, client.Active)
		mockClients.AssertExpectations(t)
	})

	t.Run("recorded sales block deactivation and leave the flag untouched", func(t *testing.T) {
		mockClients := new(MockClientRepository)

		stored := &model.Client{ID: 3, ContactID: 5, Active: true}
		mockClients.On("FindByID", mock.Anything, uint(3)).Return(stored, nil)
		mockClients.On("CountSales", mock.Anything, uint(3)).Return(int64(2), nil)

		svc := NewClientService(mockClients, new(MockContactRepository))

		_, err := svc.ToggleActive(context.Background(), 3)
		assert.Equal(t, errors.KindDependencyExists, errors.KindOf(err))
		assert.True(t, stored.Active)
		mockClients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reactivation requires an active contact", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)

		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, ContactID: 5, Active: false}, nil)
		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(&model.Contact{ID: 5, Active: false}, nil)

		svc := NewClientService(mockClients, mockContacts)

		_, err := svc.ToggleActive(context.Background(), 3)
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		mockClients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reactivates a client behind an active contact", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockContacts := new(MockContactRepository)

		mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, ContactID: 5, Active: false}, nil)
		mockContacts.On("FindByID", mock.Anything, uint(5)).Return(&model.Contact{ID: 5, Active: true}, nil)
		mockClients.On("Update", mock.Anything, mock.MatchedBy(func(client *model.Client) bool {
			return client.Active
		})).Return(nil)

		svc := NewClientService(mockClients, mockContacts)

		client, err := svc.ToggleActive(context.Background(), 3)
		assert.NoError(t, err)
		assert.True(t, client.Active)
		mockClients.AssertExpectations(t)
	})

	t.Run("missing client", func(t *testing.T) {
		mockClients := new(MockClientRepository)
		mockClients.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewClientService(mockClients, new(MockContactRepository))

		_, err := svc.ToggleActive(context.Background(), 404)
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestClientService_Update_MoveContact(t *testing.T) {
	mockClients := new(MockClientRepository)
	mockContacts := new(MockContactRepository)

	mockClients.On("FindByID", mock.Anything, uint(3)).Return(&model.Client{ID: 3, ContactID: 5, Active: true}, nil)
	mockContacts.On("FindByID", mock.Anything, uint(6)).Return(&model.Contact{ID: 6, Active: true}, nil)
	// The exclusion keeps the client from colliding with its own binding.
	mockClients.On("FindByContactID", mock.Anything, uint(6), uint(3)).Return(nil, gorm.ErrRecordNotFound)
	mockClients.On("Update", mock.Anything, mock.MatchedBy(func(client *model.Client) bool {
		return client.ContactID == 6
	})).Return(nil)

	svc := NewClientService(mockClients, mockContacts)

	newContact := uint(6)
	_, err := svc.Update(context.Background(), 3, UpdateClientInput{ContactID: &newContact})
	assert.NoError(t, err)
	mockClients.AssertExpectations(t)
}
