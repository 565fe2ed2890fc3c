package commands_test

import (
	"context"

	"mealdrop/internal/core/application/usecases/commands"
	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/domain/model/shipper"
	"mealdrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, shipperID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID, shipperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllCanceledUnreleased(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.MenuItem), args.Error(1)
}

func (m *MockInventoryRepository) Reserve(ctx context.Context, lines []ports.ReserveLine) ([]catalog.MenuItem, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MenuItem), args.Error(1)
}

func (m *MockInventoryRepository) Release(ctx context.Context, lines []ports.ReserveLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

type MockMerchantRepository struct{ mock.Mock }

func (m *MockMerchantRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Merchant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Merchant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]catalog.Merchant), args.Error(1)
}

type MockShipperLocationRepository struct{ mock.Mock }

func (m *MockShipperLocationRepository) Upsert(ctx context.Context, location shipper.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockShipperLocationRepository) Get(ctx context.Context, shipperID kernel.UUID) (shipper.Location, error) {
	args := m.Called(ctx, shipperID)
	return args.Get(0).(shipper.Location), args.Error(1)
}

// MockUoW satisfies every unit of work composition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) MerchantRepository() ports.MerchantRepository {
	args := m.Called()
	return args.Get(0).(ports.MerchantRepository)
}

func (m *MockUoW) ShipperLocationRepository() ports.ShipperLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipperLocationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockLocationUoWFactory struct{ mock.Mock }

func (m *MockLocationUoWFactory) Create() commands.LocationUoW {
	args := m.Called()
	return args.Get(0).(commands.LocationUoW)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishStatusChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
