package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dealerdesk/internal/auth"
	"dealerdesk/internal/errors"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

const bcryptCost = 10

// DefaultRoleName is attached to every newly registered user.
const DefaultRoleName = "user"

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	jwtService *auth.JWTService
	denylist   auth.TokenDenylistInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtService *auth.JWTService,
	denylist auth.TokenDenylistInterface,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// Register creates a user with a hashed password and the default role.
// A missing default role is logged and skipped; the registration stands.
func (s *authService) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		return nil, errors.E(errors.KindDuplicate, "email or username already in use")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, errors.Wrap("check user existence", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap("hash password", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap("create user", err)
	}

	if role, err := s.roleRepo.FindByName(ctx, DefaultRoleName); err != nil {
		log.Printf("warning: default role %q not found, user %s registered without roles", DefaultRoleName, user.Email)
	} else if err := s.userRepo.AddRole(ctx, user.ID, role.ID); err != nil {
		log.Printf("warning: could not assign default role to user %s: %v", user.Email, err)
	}

	created, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap("reload user", err)
	}
	return created, nil
}

// Login authenticates a user and issues a token whose role claims are the
// prefixed upper-cased role names.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.E(errors.KindUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.E(errors.KindUnauthorized, "invalid email or password")
	}

	if !user.IsActive {
		return nil, "", errors.E(errors.KindUnauthorized, "account disabled")
	}

	user.LastLogin = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", errors.Wrap("update last login", err)
	}

	token, err := s.jwtService.Generate(user)
	if err != nil {
		return nil, "", errors.Wrap("generate token", err)
	}
	return user, token, nil
}

// Logout revokes the presented token until it would have expired on its own.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	return s.denylist.Revoke(ctx, claims.ID, remaining)
}

// VerifyToken checks a raw token end to end: signature, expiry and
// revocation. Callers treat any failure uniformly as unauthenticated.
func (s *authService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, err
	}
	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, errors.Wrap("check token revocation", err)
		}
		if revoked {
			return nil, auth.ErrInvalidToken
		}
	}
	return claims, nil
}
