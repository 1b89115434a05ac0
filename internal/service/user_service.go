package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// CreateUserInput is the admin user creation payload.
type CreateUserInput struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserInput carries partial user updates.
type UpdateUserInput struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// UserService is the admin surface for account and role management.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*model.User, error)
	RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) (*model.User, error)
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roleNames []string) (*model.User, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) loadUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "user with id %s not found", id)
		}
		return nil, errors.Wrap("load user", err)
	}
	return user, nil
}

func (s *userService) loadRole(ctx context.Context, name string) (*model.Role, error) {
	role, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Ef(errors.KindNotFound, "role %q not found", name).WithField("role")
		}
		return nil, errors.Wrap("load role", err)
	}
	return role, nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, errors.E(errors.KindValidation, "email, username and password are required")
	}

	if _, err := s.userRepo.FindByEmailOrUsername(ctx, input.Email, input.Username); err == nil {
		return nil, errors.E(errors.KindDuplicate, "email or username already in use")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.Wrap("check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap("hash password", err)
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap("create user", err)
	}

	roleNames := input.Roles
	if len(roleNames) == 0 {
		roleNames = []string{DefaultRoleName}
	}
	for _, name := range roleNames {
		role, err := s.loadRole(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.AddRole(ctx, user.ID, role.ID); err != nil {
			return nil, errors.Wrap("assign role", err)
		}
	}

	return s.userRepo.FindByID(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil && existing.ID != id {
			return nil, errors.E(errors.KindDuplicate, "email already in use").WithField("email")
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, errors.Wrap("check email", err)
		}
		user.Email = *input.Email
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, errors.Wrap("hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap("update user", err)
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.loadUser(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap("list users", err)
	}
	return users, nil
}

// Deactivate disables the account. The row and its role memberships are
// kept so audit history stays intact.
func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap("deactivate user", err)
	}
	return nil
}

func (s *userService) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*model.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.loadRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	has, err := s.userRepo.HasRole(ctx, user.ID, role.ID)
	if err != nil {
		return nil, errors.Wrap("check role membership", err)
	}
	if has {
		return nil, errors.Ef(errors.KindDuplicate, "user already has role %q", roleName).WithField("role")
	}

	if err := s.userRepo.AddRole(ctx, user.ID, role.ID); err != nil {
		return nil, errors.Wrap("assign role", err)
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) (*model.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.loadRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	has, err := s.userRepo.HasRole(ctx, user.ID, role.ID)
	if err != nil {
		return nil, errors.Wrap("check role membership", err)
	}
	if !has {
		return nil, errors.Ef(errors.KindValidation, "user does not have role %q", roleName).WithField("role")
	}

	if err := s.userRepo.RemoveRole(ctx, user.ID, role.ID); err != nil {
		return nil, errors.Wrap("remove role", err)
	}
	return s.userRepo.FindByID(ctx, userID)
}

// ReplaceRoles swaps the full membership set atomically.
func (s *userService) ReplaceRoles(ctx context.Context, userID uuid.UUID, roleNames []string) (*model.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	roleIDs := make([]uuid.UUID, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.loadRole(ctx, name)
		if err != nil {
			return nil, err
		}
		roleIDs = append(roleIDs, role.ID)
	}

	if err := s.userRepo.ReplaceRoles(ctx, user.ID, roleIDs); err != nil {
		return nil, errors.Wrap("replace roles", err)
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap("list roles", err)
	}
	return roles, nil
}
