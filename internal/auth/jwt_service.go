package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"dealerdesk/internal/model"
)

// RoleClaimPrefix is prepended to the upper-cased role name in token claims.
// Issuance and authorization checks must use the same transform.
const RoleClaimPrefix = "ROLE_"

var (
	// ErrInvalidToken is returned for malformed or badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token is past its expiry.
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the signed identity payload carried by every token.
type Claims struct {
	UserID   string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// FormatRoleClaim turns a stored role name into its claim form.
func FormatRoleClaim(name string) string {
	return RoleClaimPrefix + strings.ToUpper(name)
}

// JWTService signs and verifies identity tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a JWT service with the given secret and token TTL.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate issues a signed token for the user. Role names are embedded as
// prefixed upper-cased claim strings.
func (s *JWTService) Generate(user *model.User) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, FormatRoleClaim(r.Name))
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Expiry returns the configured token TTL.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

// Verify parses and validates a token, distinguishing expiry from all other
// failures. Malformed input never panics; it reads as ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
