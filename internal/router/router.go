package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dealerdesk/internal/auth"
	"dealerdesk/internal/handler"
)

// AdminRoleName is the role required on management routes.
const AdminRoleName = "admin"

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Contact  *handler.ContactHandler
	Client   *handler.ClientHandler
	Employee *handler.EmployeeHandler
	Supplier *handler.SupplierHandler
	Position *handler.PositionHandler
	Catalog  *handler.CatalogHandler
	Vehicle  *handler.VehicleHandler
	Sale     *handler.SaleHandler
	Invoice  *handler.InvoiceHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, authMW *auth.Middleware, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/verify", h.Auth.Verify)

	// Authenticated routes: any active user can read party and catalog
	// data. Mutations live under the admin group below.
	secured := api.Group("", authMW.Authenticate())
	admin := secured.Group("", authMW.Authorize(AdminRoleName))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/contacts", h.Contact.List)
	secured.GET("/contacts/:id", h.Contact.Get)
	admin.POST("/contacts", h.Contact.Create)
	admin.PUT("/contacts/:id", h.Contact.Update)
	admin.DELETE("/contacts/:id", h.Contact.Delete)
	admin.POST("/contacts/:id/toggle-active", h.Contact.ToggleActive)

	secured.GET("/clients", h.Client.List)
	secured.GET("/clients/:id", h.Client.Get)
	admin.POST("/clients", h.Client.Create)
	admin.PUT("/clients/:id", h.Client.Update)
	admin.DELETE("/clients/:id", h.Client.Delete)
	admin.POST("/clients/:id/toggle-active", h.Client.ToggleActive)

	secured.GET("/employees", h.Employee.List)
	secured.GET("/employees/:id", h.Employee.Get)
	admin.POST("/employees", h.Employee.Create)
	admin.PUT("/employees/:id", h.Employee.Update)
	admin.DELETE("/employees/:id", h.Employee.Delete)
	admin.POST("/employees/:id/toggle-active", h.Employee.ToggleActive)

	secured.GET("/suppliers", h.Supplier.List)
	secured.GET("/suppliers/:id", h.Supplier.Get)
	admin.POST("/suppliers", h.Supplier.Create)
	admin.PUT("/suppliers/:id", h.Supplier.Update)
	admin.DELETE("/suppliers/:id", h.Supplier.Delete)
	admin.POST("/suppliers/:id/toggle-active", h.Supplier.ToggleActive)

	secured.GET("/positions", h.Position.List)
	secured.GET("/positions/:id", h.Position.Get)
	admin.POST("/positions", h.Position.Create)
	admin.PUT("/positions/:id", h.Position.Update)
	admin.DELETE("/positions/:id", h.Position.Delete)
	admin.POST("/positions/:id/toggle-active", h.Position.ToggleActive)

	secured.GET("/brands", h.Catalog.ListBrands)
	admin.POST("/brands", h.Catalog.CreateBrand)
	admin.PUT("/brands/:id", h.Catalog.UpdateBrand)
	secured.GET("/models", h.Catalog.ListModels)
	admin.POST("/models", h.Catalog.CreateModel)
	admin.PUT("/models/:id", h.Catalog.UpdateModel)
	secured.GET("/colors", h.Catalog.ListColors)
	admin.POST("/colors", h.Catalog.CreateColor)
	secured.GET("/fuel-types", h.Catalog.ListFuelTypes)
	admin.POST("/fuel-types", h.Catalog.CreateFuelType)
	secured.GET("/transmission-types", h.Catalog.ListTransmissionTypes)
	admin.POST("/transmission-types", h.Catalog.CreateTransmissionType)
	secured.GET("/features", h.Catalog.ListFeatures)
	admin.POST("/features", h.Catalog.CreateFeature)
	admin.PUT("/features/:id", h.Catalog.UpdateFeature)

	// Vehicles, sales and invoices are admin-only end to end.
	admin.GET("/vehicles", h.Vehicle.List)
	admin.GET("/vehicles/:id", h.Vehicle.Get)
	admin.POST("/vehicles", h.Vehicle.Create)
	admin.PUT("/vehicles/:id", h.Vehicle.Update)
	admin.DELETE("/vehicles/:id", h.Vehicle.Delete)

	admin.GET("/sales", h.Sale.List)
	admin.GET("/sales/:id", h.Sale.Get)
	admin.POST("/sales", h.Sale.Create)
	admin.PUT("/sales/:id", h.Sale.Update)
	admin.POST("/sales/:id/cancel", h.Sale.Cancel)

	admin.GET("/invoices", h.Invoice.List)
	admin.GET("/invoices/:id", h.Invoice.Get)
	admin.POST("/invoices", h.Invoice.Create)
	admin.PUT("/invoices/:id", h.Invoice.Update)
	admin.POST("/invoices/:id/void", h.Invoice.Void)

	// User and role management
	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.Get)
	admin.POST("/users", h.User.Create)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Deactivate)
	admin.POST("/users/:id/roles", h.User.AssignRole)
	admin.PUT("/users/:id/roles", h.User.ReplaceRoles)
	admin.DELETE("/users/:id/roles/:role", h.User.RemoveRole)
	admin.GET("/roles", h.User.ListRoles)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
