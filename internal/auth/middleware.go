package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKey is where the authenticate gate stores the decoded *Claims.
const ContextKey = "user"

// TokenCookieName is the HTTP-only cookie carrying the token. The same name
// doubles as the query parameter fallback.
const TokenCookieName = "token"

// Middleware builds the authenticate and authorize gates.
type Middleware struct {
	jwtService *JWTService
	denylist   TokenDenylistInterface
}

// NewMiddleware creates the middleware factory.
func NewMiddleware(jwtService *JWTService, denylist TokenDenylistInterface) *Middleware {
	return &Middleware{jwtService: jwtService, denylist: denylist}
}

// ExtractToken returns the first token found, checking the cookie, then the
// Authorization header, then the query parameter. Only the first match is
// ever verified: a bad token in the cookie fails the request even if a valid
// one sits in the header.
func ExtractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(header[len("Bearer "):]); token != "" {
			return token
		}
	}

	return c.QueryParam(TokenCookieName)
}

// Authenticate verifies the request token and attaches its claims to the
// context. Failures are uniform 401s; codec internals never reach the client.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			if m.denylist != nil && claims.ID != "" {
				revoked, err := m.denylist.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil || revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
				}
			}

			c.Set(ContextKey, claims)
			return next(c)
		}
	}
}

// Authorize admits only identities holding at least one of the required
// roles. With no roles given, any authenticated identity passes. Must run
// after Authenticate.
func (m *Middleware) Authorize(roles ...string) echo.MiddlewareFunc {
	required := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		required[FormatRoleClaim(role)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKey).(*Claims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - no user found")
			}

			if len(required) == 0 {
				return next(c)
			}

			for _, claim := range claims.Roles {
				if _, found := required[claim]; found {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// ClaimsFrom returns the authenticated identity attached by Authenticate.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}
