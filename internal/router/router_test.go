package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"dealerdesk/internal/auth"
	"dealerdesk/internal/handler"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/service"
)

type stubDenylist struct{}

func (stubDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

func (stubDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

// stubContactService lets requests that clear the middleware reach a real
// handler without a database behind it.
type stubContactService struct{}

func (stubContactService) Create(ctx context.Context, input service.CreateContactInput) (*model.Contact, error) {
	return &model.Contact{FullName: input.FullName}, nil
}

func (stubContactService) Update(ctx context.Context, id uint, input service.UpdateContactInput) (*model.Contact, error) {
	return &model.Contact{}, nil
}

func (stubContactService) GetByID(ctx context.Context, id uint) (*model.Contact, error) {
	return &model.Contact{}, nil
}

func (stubContactService) List(ctx context.Context, params repository.ListParams) ([]model.Contact, int64, error) {
	return nil, 0, nil
}

func (stubContactService) ToggleActive(ctx context.Context, id uint) (*model.Contact, error) {
	return &model.Contact{}, nil
}

func (stubContactService) Delete(ctx context.Context, id uint) error {
	return nil
}

func newTestServer(t *testing.T) (*echo.Echo, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	mw := auth.NewMiddleware(jwtService, stubDenylist{})

	e := echo.New()
	Register(e, mw, Handlers{
		Contact: handler.NewContactHandler(stubContactService{}),
	})
	return e, jwtService
}

func issueToken(t *testing.T, svc *auth.JWTService, roles ...string) string {
	t.Helper()
	user := &model.User{ID: uuid.New(), Username: "u", Email: "u@example.com"}
	for _, name := range roles {
		user.Roles = append(user.Roles, model.Role{ID: uuid.New(), Name: name})
	}
	token, err := svc.Generate(user)
	assert.NoError(t, err)
	return token
}

func doRequest(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_SecuredRoutesRejectAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/contacts", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_UserRoleCanRead(t *testing.T) {
	e, jwtService := newTestServer(t)
	token := issueToken(t, jwtService, "user")

	rec := doRequest(e, http.MethodGet, "/api/contacts", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Inventory, sales and invoicing routes, and every mutation, require the
// admin role. A plain user hitting any of them gets a 403.
func TestRegister_UserRoleForbiddenOnAdminRoutes(t *testing.T) {
	e, jwtService := newTestServer(t)
	token := issueToken(t, jwtService, "user")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/vehicles"},
		{http.MethodGet, "/api/vehicles/1"},
		{http.MethodPost, "/api/vehicles"},
		{http.MethodGet, "/api/sales"},
		{http.MethodPost, "/api/sales/1/cancel"},
		{http.MethodGet, "/api/invoices"},
		{http.MethodPost, "/api/invoices/1/void"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodPut, "/api/contacts/1"},
		{http.MethodDelete, "/api/contacts/1"},
		{http.MethodPost, "/api/clients"},
		{http.MethodPost, "/api/clients/1/toggle-active"},
		{http.MethodPost, "/api/brands"},
		{http.MethodGet, "/api/users"},
	}
	for _, tc := range cases {
		rec := doRequest(e, tc.method, tc.path, token)
		assert.Equalf(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRegister_AdminRolePassesGate(t *testing.T) {
	e, jwtService := newTestServer(t)
	token := issueToken(t, jwtService, "admin")

	rec := doRequest(e, http.MethodPost, "/api/contacts/1/toggle-active", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
