package service

import (
	"context"

	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreatePositionInput is the position creation payload.
type CreatePositionInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdatePositionInput carries partial position updates.
type UpdatePositionInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PositionService manages job titles.
type PositionService interface {
	Create(ctx context.Context, input CreatePositionInput) (*model.Position, error)
	Update(ctx context.Context, id uint, input UpdatePositionInput) (*model.Position, error)
	GetByID(ctx context.Context, id uint) (*model.Position, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Position, int64, error)
	ToggleActive(ctx context.Context, id uint) (*model.Position, error)
	Delete(ctx context.Context, id uint) error
}

type positionService struct {
	positionRepo repository.PositionRepository
}

// NewPositionService creates a new position service.
func NewPositionService(positionRepo repository.PositionRepository) PositionService {
	return &positionService{positionRepo: positionRepo}
}

func (s *positionService) checkNameFree(ctx context.Context, name string, excludeID uint) error {
	if _, err := s.positionRepo.FindByName(ctx, name, excludeID); err == nil {
		return errors.Ef(errors.KindDuplicate, "position %q already exists", name).WithField("name")
	} else if err != gorm.ErrRecordNotFound {
		return errors.Wrap("check position name", err)
	}
	return nil
}

func (s *positionService) Create(ctx context.Context, input CreatePositionInput) (*model.Position, error) {
	if input.Name == "" {
		return nil, errors.E(errors.KindValidation, "position name is required").WithField("name")
	}
	if err := s.checkNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}

	position := &model.Position{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, errors.Wrap("create position", err)
	}
	return position, nil
}

func (s *positionService) Update(ctx context.Context, id uint, input UpdatePositionInput) (*model.Position, error) {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "position with id %d not found", id)
		}
		return nil, errors.Wrap("load position", err)
	}

	if input.Name != nil && *input.Name != position.Name {
		if *input.Name == "" {
			return nil, errors.E(errors.KindValidation, "position name must not be empty").WithField("name")
		}
		if err := s.checkNameFree(ctx, *input.Name, id); err != nil {
			return nil, err
		}
		position.Name = *input.Name
	}
	if input.Description != nil {
		position.Description = input.Description
	}

	if err := s.positionRepo.Update(ctx, position); err != nil {
		return nil, errors.Wrap("update position", err)
	}
	return position, nil
}

func (s *positionService) GetByID(ctx context.Context, id uint) (*model.Position, error) {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "position with id %d not found", id)
		}
		return nil, errors.Wrap("load position", err)
	}
	return position, nil
}

func (s *positionService) List(ctx context.Context, params repository.ListParams) ([]model.Position, int64, error) {
	positions, total, err := s.positionRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap("list positions", err)
	}
	return positions, total, nil
}

func (s *positionService) checkDependencies(ctx context.Context, id uint) error {
	employees, err := s.positionRepo.CountEmployees(ctx, id)
	if err != nil {
		return errors.Wrap("count position holders", err)
	}
	if employees > 0 {
		return errors.Ef(errors.KindDependencyExists, "position with id %d is held by %d active employee(s)", id, employees)
	}
	return nil
}

// ToggleActive flips the active flag. A position still held by active
// employees cannot be deactivated; reactivation has no preconditions.
func (s *positionService) ToggleActive(ctx context.Context, id uint) (*model.Position, error) {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "position with id %d not found", id)
		}
		return nil, errors.Wrap("load position", err)
	}

	if position.Active {
		if err := s.checkDependencies(ctx, id); err != nil {
			return nil, err
		}
	}

	position.Active = !position.Active
	if err := s.positionRepo.Update(ctx, position); err != nil {
		return nil, errors.Wrap("toggle position active flag", err)
	}
	return position, nil
}

// Delete deactivates the position. Positions still held by active employees
// cannot be removed.
func (s *positionService) Delete(ctx context.Context, id uint) error {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "position with id %d not found", id)
		}
		return errors.Wrap("load position", err)
	}

	if err := s.checkDependencies(ctx, id); err != nil {
		return err
	}

	position.Active = false
	if err := s.positionRepo.Update(ctx, position); err != nil {
		return errors.Wrap("deactivate position", err)
	}
	return nil
}
