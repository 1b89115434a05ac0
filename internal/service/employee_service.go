package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateEmployeeInput is the employee creation payload.
type CreateEmployeeInput struct {
	ContactID  uint       `json:"contact_id"`
	PositionID uint       `json:"position_id"`
	HiredAt    *time.Time `json:"hired_at"`
}

// UpdateEmployeeInput carries partial employee updates.
type UpdateEmployeeInput struct {
	ContactID    *uint      `json:"contact_id"`
	PositionID   *uint      `json:"position_id"`
	HiredAt      *time.Time `json:"hired_at"`
	TerminatedAt *time.Time `json:"terminated_at"`
}

// EmployeeService manages dealership staff.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*model.Employee, error)
	Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*model.Employee, error)
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Employee, int64, error)
	ToggleActive(ctx context.Context, id uint) (*model.Employee, error)
	Delete(ctx context.Context, id uint) error
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	contactRepo  repository.ContactRepository
	positionRepo repository.PositionRepository
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	contactRepo repository.ContactRepository,
	positionRepo repository.PositionRepository,
) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		contactRepo:  contactRepo,
		positionRepo: positionRepo,
	}
}

func (s *employeeService) checkContact(ctx context.Context, contactID, excludeID uint) error {
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

	if _, err := s.employeeRepo.FindByContactID(ctx, contactID, excludeID); err == nil {
		return errors.Ef(errors.KindDuplicate, "contact with id %d is already assigned to an employee", contactID).WithField("contact_id")
	} else if err != gorm.ErrRecordNotFound {
		return errors.Wrap("check contact assignment", err)
	}
	return nil
}

func (s *employeeService) checkPosition(ctx context.Context, positionID uint) error {
	position, err := s.positionRepo.FindByID(ctx, positionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindForeignKeyNotFound, "position with id %d does not exist", positionID).WithField("position_id")
		}
		return errors.Wrap("validate position", err)
	}
	if !position.Active {
		return errors.Ef(errors.KindValidation, "position with id %d is inactive", positionID).WithField("position_id")
	}
	return nil
}

func (s *employeeService) Create(ctx context.Context, input CreateEmployeeInput) (*model.Employee, error) {
	if err := s.checkContact(ctx, input.ContactID, 0); err != nil {
		return nil, err
	}
	if err := s.checkPosition(ctx, input.PositionID); err != nil {
		return nil, err
	}

	employee := &model.Employee{
		ContactID:  input.ContactID,
		PositionID: input.PositionID,
		HiredAt:    input.HiredAt,
		Active:     true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, errors.Wrap("create employee", err)
	}
	return s.employeeRepo.FindByID(ctx, employee.ID)
}

func (s *employeeService) Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "employee with id %d not found", id)
		}
		return nil, errors.Wrap("load employee", err)
	}

	if input.ContactID != nil && *input.ContactID != employee.ContactID {
		if err := s.checkContact(ctx, *input.ContactID, id); err != nil {
			return nil, err
		}
		employee.ContactID = *input.ContactID
	}
	if input.PositionID != nil && *input.PositionID != employee.PositionID {
		if err := s.checkPosition(ctx, *input.PositionID); err != nil {
			return nil, err
		}
		employee.PositionID = *input.PositionID
	}
	if input.HiredAt != nil {
		employee.HiredAt = input.HiredAt
	}
	if input.TerminatedAt != nil {
		employee.TerminatedAt = input.TerminatedAt
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, errors.Wrap("update employee", err)
	}
	return s.employeeRepo.FindByID(ctx, id)
}

func (s *employeeService) GetByID(ctx context.Context, id uint) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "employee with id %d not found", id)
		}
		return nil, errors.Wrap("load employee", err)
	}
	return employee, nil
}

func (s *employeeService) List(ctx context.Context, params repository.ListParams) ([]model.Employee, int64, error) {
	employees, total, err := s.employeeRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap("list employees", err)
	}
	return employees, total, nil
}

func (s *employeeService) checkDependencies(ctx context.Context, id uint) error {
	sales, err := s.employeeRepo.CountSales(ctx, id)
	if err != nil {
		return errors.Wrap("count employee sales", err)
	}
	if sales > 0 {
		return errors.Ef(errors.KindDependencyExists, "employee with id %d has %d recorded sale(s)", id, sales)
	}

	acquisitions, err := s.employeeRepo.CountAcquisitions(ctx, id)
	if err != nil {
		return errors.Wrap("count employee acquisitions", err)
	}
	if acquisitions > 0 {
		return errors.Ef(errors.KindDependencyExists, "employee with id %d registered %d acquisition(s)", id, acquisitions)
	}
	return nil
}

// ToggleActive flips the active flag. Deactivation follows the same
// dependency rules as Delete; reactivation requires the bound contact and
// the position to both be active.
func (s *employeeService) ToggleActive(ctx context.Context, id uint) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "employee with id %d not found", id)
		}
		return nil, errors.Wrap("load employee", err)
	}

	if employee.Active {
		if err := s.checkDependencies(ctx, id); err != nil {
			return nil, err
		}
	} else {
		contact, err := s.contactRepo.FindByID(ctx, employee.ContactID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.Ef(errors.KindValidation, "contact with id %d does not exist", employee.ContactID).WithField("contact_id")
			}
			return nil, errors.Wrap("load contact", err)
		}
		if !contact.Active {
			return nil, errors.Ef(errors.KindValidation, "contact with id %d is inactive", employee.ContactID).WithField("contact_id")
		}
		if err := s.checkPosition(ctx, employee.PositionID); err != nil {
			return nil, err
		}
	}

	employee.Active = !employee.Active
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, errors.Wrap("toggle employee active flag", err)
	}
	return s.employeeRepo.FindByID(ctx, id)
}

// Delete deactivates the employee and stamps the termination date. An
// employee referenced by sales or acquisitions cannot be removed.
func (s *employeeService) Delete(ctx context.Context, id uint) error {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.Ef(errors.KindNotFound, "employee with id %d not found", id)
		}
		return errors.Wrap("load employee", err)
	}

	if err := s.checkDependencies(ctx, id); err != nil {
		return err
	}

	now := time.Now()
	employee.Active = false
	employee.TerminatedAt = &now
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return errors.Wrap("deactivate employee", err)
	}
	return nil
}
