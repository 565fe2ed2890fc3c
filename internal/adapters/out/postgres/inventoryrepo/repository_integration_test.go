package inventoryrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mealdrop/internal/adapters/out/postgres/inventoryrepo"
	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/ports"
	"mealdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InventoryRepositoryIntegrationTestSuite verifies the conditional stock
// decrement against a real PostgreSQL instance, including under concurrent
// reservations.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.MenuItemDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE menu_items").Error)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) seedItem(stock int) catalog.MenuItem {
	item, err := catalog.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Banh Mi", decimal.NewFromInt(25000), stock)
	suite.Require().NoError(err)

	dto := inventoryrepo.FromDomain(item)
	suite.Require().NoError(suite.db.Create(&dto).Error)

	return item
}

func (suite *InventoryRepositoryIntegrationTestSuite) stockOf(id kernel.UUID) (int, bool) {
	item, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	return item.Stock(), item.IsAvailable()
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_DecrementsStock() {
	item := suite.seedItem(10)

	reserved, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 3},
	})
	suite.Require().NoError(err)

	suite.Require().Len(reserved, 1)
	suite.Equal(7, reserved[0].Stock())
	suite.True(reserved[0].IsAvailable())

	stock, available := suite.stockOf(item.ID())
	suite.Equal(7, stock)
	suite.True(available)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_LastUnitFlipsAvailability() {
	item := suite.seedItem(3)

	_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 3},
	})
	suite.Require().NoError(err)

	stock, available := suite.stockOf(item.ID())
	suite.Equal(0, stock)
	suite.False(available)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_InsufficientStock() {
	item := suite.seedItem(2)

	_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 5},
	})
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)

	var stockErr *errs.InsufficientStockError
	suite.Require().True(errors.As(err, &stockErr))
	suite.Equal(5, stockErr.Requested)
	suite.Equal(2, stockErr.Available)

	stock, _ := suite.stockOf(item.ID())
	suite.Equal(2, stock, "failed reservation leaves stock untouched")
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_UnavailableItemReportsZero() {
	item := suite.seedItem(0)

	_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 1},
	})
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)

	var stockErr *errs.InsufficientStockError
	suite.Require().True(errors.As(err, &stockErr))
	suite.Equal(0, stockErr.Available)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_UnknownItem() {
	_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: kernel.NewUUID(), Quantity: 1},
	})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserve_ConcurrentRace_NeverOversells() {
	item := suite.seedItem(5)

	const racers = 10

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
				{MenuItemID: item.ID(), Quantity: 1},
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(5, wins, "only the seeded stock can be reserved")

	stock, available := suite.stockOf(item.ID())
	suite.Equal(0, stock)
	suite.False(available)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestRelease_RestoresStockAndAvailability() {
	item := suite.seedItem(2)

	_, err := suite.repository.Reserve(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 2},
	})
	suite.Require().NoError(err)

	err = suite.repository.Release(context.Background(), []ports.ReserveLine{
		{MenuItemID: item.ID(), Quantity: 2},
	})
	suite.Require().NoError(err)

	stock, available := suite.stockOf(item.ID())
	suite.Equal(2, stock)
	suite.True(available)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestRelease_MissingItemIsIgnored() {
	err := suite.repository.Release(context.Background(), []ports.ReserveLine{
		{MenuItemID: kernel.NewUUID(), Quantity: 1},
	})
	suite.Require().NoError(err)
}

func TestInventoryRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
