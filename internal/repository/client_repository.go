package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// ClientRepository defines client persistence operations.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Client, error)
	List(ctx context.Context, params ListParams) ([]model.Client, int64, error)
	CountSales(ctx context.Context, id uint) (int64, error)
	CountTradeIns(ctx context.Context, id uint) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository builds a GORM-backed repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Preload("Contact").Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByContactID looks up the client claiming a contact, optionally
// excluding one client id (for updates).
func (r *clientRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Client, error) {
	var client model.Client
	q := r.db.WithContext(ctx).Where("contact_id = ?", contactID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, params ListParams) ([]model.Client, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Client{}).
		Joins("JOIN contacts ON contacts.id = clients.contact_id")

	if params.Active != nil {
		q = q.Where("clients.active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where(
			"clients.notes LIKE ? OR contacts.full_name LIKE ? OR contacts.company_name LIKE ? OR contacts.email LIKE ? OR contacts.document_number LIKE ?",
			term, term, term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	if err := q.Preload("Contact").Order("clients.id ASC").
		Limit(params.Limit).Offset(params.Offset()).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) CountSales(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("client_id = ?", id).Count(&count).Error
	return count, err
}

func (r *clientRepository) CountTradeIns(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Acquisition{}).Where("trade_in_client_id = ?", id).Count(&count).Error
	return count, err
}
