package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// ContactRepository defines contact persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	FindByEmail(ctx context.Context, email string) (*model.Contact, error)
	List(ctx context.Context, params ListParams) ([]model.Contact, int64, error)
	CountDependents(ctx context.Context, id uint) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindByEmail(ctx context.Context, email string) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, params ListParams) ([]model.Contact, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Contact{})

	if params.Active != nil {
		q = q.Where("active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where(
			"full_name LIKE ? OR company_name LIKE ? OR email LIKE ? OR document_number LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []model.Contact
	if err := q.Order("id ASC").Limit(params.Limit).Offset(params.Offset()).Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// CountDependents counts clients, employees and suppliers claiming this
// contact; deactivation is blocked while any exist.
func (r *contactRepository) CountDependents(ctx context.Context, id uint) (int64, error) {
	var total, count int64
	if err := r.db.WithContext(ctx).Model(&model.Client{}).Where("contact_id = ? AND active = ?", id, true).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("contact_id = ? AND active = ?", id, true).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count
	if err := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("contact_id = ? AND active = ?", id, true).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count
	return total, nil
}
