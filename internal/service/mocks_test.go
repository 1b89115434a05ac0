package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) AddRole(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockUserRepository) ReplaceRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, roleIDs)
	return args.Error(0)
}

func (m *MockUserRepository) HasRole(ctx context.Context, userID, roleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, roleID)
	return args.Bool(0), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindOrCreate(ctx context.Context, role *model.Role) (*model.Role, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

// MockDenylist is a mock implementation of TokenDenylistInterface.
type MockDenylist struct {
	mock.Mock
}

func (m *MockDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockVehicleRepository is a mock implementation of VehicleRepository. The
// transaction closure is executed against the mock itself.
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByIDFull(ctx context.Context, id uint) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context, params repository.ListParams, filter repository.VehicleFilter) ([]model.Vehicle, int64, error) {
	args := m.Called(ctx, params, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) CreateAcquisition(ctx context.Context, acq *model.Acquisition) error {
	args := m.Called(ctx, acq)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateAcquisition(ctx context.Context, acq *model.Acquisition) error {
	args := m.Called(ctx, acq)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindAcquisitionByVehicleID(ctx context.Context, vehicleID uint) (*model.Acquisition, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Acquisition), args.Error(1)
}

func (m *MockVehicleRepository) ListFeatureRows(ctx context.Context, vehicleID uint) ([]model.VehicleFeature, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VehicleFeature), args.Error(1)
}

func (m *MockVehicleRepository) CreateFeatureRow(ctx context.Context, row *model.VehicleFeature) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateFeatureRowValue(ctx context.Context, vehicleID, featureID uint, value *string) error {
	args := m.Called(ctx, vehicleID, featureID, value)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteFeatureRow(ctx context.Context, vehicleID, featureID uint) error {
	args := m.Called(ctx, vehicleID, featureID)
	return args.Error(0)
}

func (m *MockVehicleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VehicleRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateBrand(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateBrand(ctx context.Context, brand *model.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindBrandByID(ctx context.Context, id uint) (*model.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}

func (m *MockCatalogRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Brand), args.Error(1)
}

func (m *MockCatalogRepository) CreateModel(ctx context.Context, vm *model.VehicleModel) error {
	args := m.Called(ctx, vm)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateModel(ctx context.Context, vm *model.VehicleModel) error {
	args := m.Called(ctx, vm)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindModelByID(ctx context.Context, id uint) (*model.VehicleModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleModel), args.Error(1)
}

func (m *MockCatalogRepository) ListModels(ctx context.Context, brandID uint) ([]model.VehicleModel, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VehicleModel), args.Error(1)
}

func (m *MockCatalogRepository) ListModelIDsByBrand(ctx context.Context, brandID uint) ([]uint, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockCatalogRepository) CreateColor(ctx context.Context, color *model.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindColorByID(ctx context.Context, id uint) (*model.Color, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Color), args.Error(1)
}

func (m *MockCatalogRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Color), args.Error(1)
}

func (m *MockCatalogRepository) CreateFuelType(ctx context.Context, ft *model.FuelType) error {
	args := m.Called(ctx, ft)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindFuelTypeByID(ctx context.Context, id uint) (*model.FuelType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FuelType), args.Error(1)
}

func (m *MockCatalogRepository) ListFuelTypes(ctx context.Context) ([]model.FuelType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FuelType), args.Error(1)
}

func (m *MockCatalogRepository) CreateTransmissionType(ctx context.Context, tt *model.TransmissionType) error {
	args := m.Called(ctx, tt)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindTransmissionTypeByID(ctx context.Context, id uint) (*model.TransmissionType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransmissionType), args.Error(1)
}

func (m *MockCatalogRepository) ListTransmissionTypes(ctx context.Context) ([]model.TransmissionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransmissionType), args.Error(1)
}

func (m *MockCatalogRepository) CreateFeature(ctx context.Context, feature *model.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateFeature(ctx context.Context, feature *model.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindFeatureByID(ctx context.Context, id uint) (*model.Feature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feature), args.Error(1)
}

func (m *MockCatalogRepository) ListFeatures(ctx context.Context) ([]model.Feature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feature), args.Error(1)
}

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Client, error) {
	args := m.Called(ctx, contactID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, params repository.ListParams) ([]model.Client, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) CountSales(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountTradeIns(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*model.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, params repository.ListParams) ([]model.Contact, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) CountDependents(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Employee, error) {
	args := m.Called(ctx, contactID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, params repository.ListParams) ([]model.Employee, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeRepository) CountSales(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountAcquisitions(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierRepository is a mock implementation of SupplierRepository.
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByContactID(ctx context.Context, contactID uint, excludeID uint) (*model.Supplier, error) {
	args := m.Called(ctx, contactID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, params repository.ListParams) ([]model.Supplier, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) CountAcquisitions(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) CountFinancings(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of SaleRepository. The
// transaction closure is executed against the mock itself.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *model.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *model.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDFull(ctx context.Context, id uint) (*model.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sale), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, params repository.ListParams, status model.SaleStatus) ([]model.Sale, int64, error) {
	args := m.Called(ctx, params, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) UpdateVehicleStatus(ctx context.Context, vehicleID uint, status model.VehicleStatus) error {
	args := m.Called(ctx, vehicleID, status)
	return args.Error(0)
}

func (m *MockSaleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.SaleRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository. The
// transaction closure is executed against the mock itself.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySaleID(ctx context.Context, saleID uint) (*model.Invoice, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, params repository.ListParams, status model.InvoiceStatus) ([]model.Invoice, int64, error) {
	args := m.Called(ctx, params, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) UpdateSaleStatus(ctx context.Context, saleID uint, status model.SaleStatus) error {
	args := m.Called(ctx, saleID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.InvoiceRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}
