package main

import (
	"log"
	"os"

	_ "dealerdesk/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/auth"
	"dealerdesk/internal/cache"
	"dealerdesk/internal/config"
	"dealerdesk/internal/db"
	"dealerdesk/internal/handler"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/router"
	"dealerdesk/internal/service"
)

// @title DealerDesk API
// @version 1.0
// @description Vehicle dealership back office: inventory, acquisitions, sales, invoicing and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	models := []interface{}{
		&model.Role{},
		&model.User{},
		&model.UserRole{},
		&model.Contact{},
		&model.Client{},
		&model.Position{},
		&model.Employee{},
		&model.Supplier{},
		&model.Brand{},
		&model.VehicleModel{},
		&model.Color{},
		&model.FuelType{},
		&model.TransmissionType{},
		&model.Feature{},
		&model.Vehicle{},
		&model.Acquisition{},
		&model.VehicleFeature{},
		&model.Sale{},
		&model.Invoice{},
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for i := len(models) - 1; i >= 0; i-- {
			if err := gormDB.Migrator().DropTable(models[i]); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(models...); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)
	supplierRepo := repository.NewSupplierRepository(gormDB)
	positionRepo := repository.NewPositionRepository(gormDB)
	catalogRepo := repository.NewCatalogRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	saleRepo := repository.NewSaleRepository(gormDB)
	invoiceRepo := repository.NewInvoiceRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	denylist := auth.NewTokenDenylist(cacheClient)
	authMW := auth.NewMiddleware(jwtService, denylist)

	// Services
	authService := service.NewAuthService(userRepo, roleRepo, jwtService, denylist)
	userService := service.NewUserService(userRepo, roleRepo)
	contactService := service.NewContactService(contactRepo)
	clientService := service.NewClientService(clientRepo, contactRepo)
	employeeService := service.NewEmployeeService(employeeRepo, contactRepo, positionRepo)
	supplierService := service.NewSupplierService(supplierRepo, contactRepo)
	positionService := service.NewPositionService(positionRepo)
	catalogService := service.NewCatalogService(catalogRepo, cacheClient)
	vehicleService := service.NewVehicleService(vehicleRepo, catalogRepo, cacheClient)
	saleService := service.NewSaleService(saleRepo, vehicleRepo, clientRepo, employeeRepo, supplierRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, saleRepo)

	// Handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService, cfg.JWTExpiry),
		User:     handler.NewUserHandler(userService),
		Contact:  handler.NewContactHandler(contactService),
		Client:   handler.NewClientHandler(clientService),
		Employee: handler.NewEmployeeHandler(employeeService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Position: handler.NewPositionHandler(positionService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Vehicle:  handler.NewVehicleHandler(vehicleService),
		Sale:     handler.NewSaleHandler(saleService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
	}

	router.Register(e, authMW, handlers)

	log.Printf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
