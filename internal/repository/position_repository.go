package repository

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/model"
)

// PositionRepository defines position persistence operations.
type PositionRepository interface {
	Create(ctx context.Context, position *model.Position) error
	Update(ctx context.Context, position *model.Position) error
	FindByID(ctx context.Context, id uint) (*model.Position, error)
	FindByName(ctx context.Context, name string, excludeID uint) (*model.Position, error)
	List(ctx context.Context, params ListParams) ([]model.Position, int64, error)
	CountEmployees(ctx context.Context, id uint) (int64, error)
}

type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository builds a GORM-backed repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, position *model.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *positionRepository) Update(ctx context.Context, position *model.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

func (r *positionRepository) FindByID(ctx context.Context, id uint) (*model.Position, error) {
	var position model.Position
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *positionRepository) FindByName(ctx context.Context, name string, excludeID uint) (*model.Position, error) {
	var position model.Position
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *positionRepository) List(ctx context.Context, params ListParams) ([]model.Position, int64, error) {
	params.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Position{})

	if params.Active != nil {
		q = q.Where("active = ?", *params.Active)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var positions []model.Position
	if err := q.Order("id ASC").Limit(params.Limit).Offset(params.Offset()).Find(&positions).Error; err != nil {
		return nil, 0, err
	}
	return positions, total, nil
}

func (r *positionRepository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("position_id = ? AND active = ?", id, true).Count(&count).Error
	return count, err
}
