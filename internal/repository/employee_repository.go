package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Employee, error)
	List(ctx context.Context, params ListParams) ([]model.Employee, int64, error)
	CountSales(ctx context.Context, id uint) (int64, error)
	CountAcquisitions(ctx context.Context, id uint) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository builds a GORM-backed repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Preload("Contact").Preload("Position").
		Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Employee, error) {
	var employee model.Employee
	q := r.db.WithContext(ctx).Where("contact_id = ?", contactID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, params ListParams) ([]model.Employee, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Employee{}).
		Joins("JOIN contacts ON contacts.id = employees.contact_id").
		Joins("JOIN positions ON positions.id = employees.position_id")

	if params.Active != nil {
		q = q.Where("employees.active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where(
			"contacts.full_name LIKE ? OR contacts.email LIKE ? OR contacts.document_number LIKE ? OR positions.name LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []model.Employee
	if err := q.Preload("Contact").Preload("Position").Order("employees.id ASC").
		Limit(params.Limit).Offset(params.Offset()).Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) CountSales(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("seller_id = ?", id).Count(&count).Error
	return count, err
}

func (r *employeeRepository) CountAcquisitions(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Acquisition{}).Where("registered_by_id = ?", id).Count(&count).Error
	return count, err
}
