package queries_test

import (
	"context"
	"testing"
	"time"

	"mealdrop/internal/adapters/out/postgres/inventoryrepo"
	"mealdrop/internal/adapters/out/postgres/merchantrepo"
	"mealdrop/internal/adapters/out/postgres/orderrepo"
	"mealdrop/internal/adapters/out/postgres/shipperrepo"
	"mealdrop/internal/core/application/usecases/queries"
	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/domain/services"
	"mealdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, interface{}) {}

// QueriesIntegrationTestSuite verifies the read side against a real
// PostgreSQL instance: actor scoping, listings and the dispatch feed.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&inventoryrepo.MenuItemDTO{},
		&merchantrepo.MerchantDTO{},
		&shipperrepo.ShipperLocationDTO{},
	))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_lines, menu_items, merchants, shipper_locations").Error)
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) seedMerchant(name string, location *kernel.GeoPoint) catalog.Merchant {
	merchant, err := catalog.NewMerchant(kernel.NewUUID(), name, "1 Tran Hung Dao", location)
	suite.Require().NoError(err)

	dto := merchantrepo.FromDomain(merchant)
	suite.Require().NoError(suite.db.Create(&dto).Error)

	return merchant
}

func (suite *QueriesIntegrationTestSuite) seedOrder(
	customerID, merchantID kernel.UUID,
	createdAt time.Time,
) *order.Order {
	seeded, err := order.NewOrder(
		kernel.NewUUID(), customerID, merchantID, "99 Vo Thi Sau", "", createdAt)
	suite.Require().NoError(err)

	line, err := order.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), "Bun Cha", decimal.NewFromInt(55000), 2)
	suite.Require().NoError(err)
	suite.Require().NoError(seeded.AddLine(line))

	suite.Require().NoError(suite.orders.Add(context.Background(), seeded))
	return seeded
}

func (suite *QueriesIntegrationTestSuite) geoPoint(lat, lng float64) *kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	return &point
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_CustomerSeesOwnOrder() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	merchant := suite.seedMerchant("Quan Ngon", nil)
	seeded := suite.seedOrder(customerID, merchant.ID(), time.Now().UTC())

	query, err := queries.NewGetOrderQuery(seeded.ID(), customerID, order.RoleCustomer)
	suite.Require().NoError(err)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(response.ID.IsEqual(seeded.ID()))
	suite.Equal(order.Pending.String(), response.Status)
	suite.Equal("Quan Ngon", response.MerchantName)
	suite.Equal("1 Tran Hung Dao", response.MerchantAddress)
	suite.Nil(response.ShipperID)
	suite.Require().Len(response.Lines, 1)
	suite.Equal("Bun Cha", response.Lines[0].Name)
	suite.Equal(2, response.Lines[0].Quantity)
	suite.True(response.TotalAmount.Equal(decimal.NewFromInt(110000)))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_StrangerGetsNotFound() {
	ctx := context.Background()
	merchant := suite.seedMerchant("Quan Ngon", nil)
	seeded := suite.seedOrder(kernel.NewUUID(), merchant.ID(), time.Now().UTC())

	query, err := queries.NewGetOrderQuery(seeded.ID(), kernel.NewUUID(), order.RoleCustomer)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_AdminSeesEverything() {
	ctx := context.Background()
	merchant := suite.seedMerchant("Quan Ngon", nil)
	seeded := suite.seedOrder(kernel.NewUUID(), merchant.ID(), time.Now().UTC())

	query, err := queries.NewGetOrderQuery(seeded.ID(), kernel.NewUUID(), order.RoleAdmin)
	suite.Require().NoError(err)

	response, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(response.ID.IsEqual(seeded.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListMyOrders_CustomerScope() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	merchant := suite.seedMerchant("Quan Ngon", nil)

	older := suite.seedOrder(customerID, merchant.ID(), time.Now().UTC().Add(-time.Hour))
	newer := suite.seedOrder(customerID, merchant.ID(), time.Now().UTC())
	suite.seedOrder(kernel.NewUUID(), merchant.ID(), time.Now().UTC())

	query, err := queries.NewListMyOrdersQuery(customerID, order.RoleCustomer)
	suite.Require().NoError(err)

	summaries, err := queries.NewListMyOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(summaries, 2)
	suite.True(summaries[0].ID.IsEqual(newer.ID()), "newest first")
	suite.True(summaries[1].ID.IsEqual(older.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListMyOrders_ShipperSeesActiveDeliveriesOnly() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()
	merchant := suite.seedMerchant("Quan Ngon", nil)

	active := suite.seedOrder(kernel.NewUUID(), merchant.ID(), time.Now().UTC())
	_, err := suite.orders.Claim(ctx, active.ID(), shipperID)
	suite.Require().NoError(err)

	done := suite.seedOrder(kernel.NewUUID(), merchant.ID(), time.Now().UTC())
	_, err = suite.orders.Claim(ctx, done.ID(), shipperID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = ? WHERE id = ?",
		order.Delivered.String(), done.ID().Bytes()).Error)

	query, err := queries.NewListMyOrdersQuery(shipperID, order.RoleShipper)
	suite.Require().NoError(err)

	summaries, err := queries.NewListMyOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].ID.IsEqual(active.ID()))
}

func (suite *QueriesIntegrationTestSuite) feedHandler() queries.ListAvailableOrdersQueryHandler {
	ranker := services.NewOrderRanker(
		20, decimal.NewFromInt(20000), decimal.NewFromInt(5000))
	return queries.NewListAvailableOrdersQueryHandler(suite.db, ranker, 15*time.Minute)
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableOrders_RanksByDistance() {
	ctx := context.Background()

	near := suite.seedMerchant("Gan Day", suite.geoPoint(11.332101, 106.076425))
	noLocation := suite.seedMerchant("Khong Toa Do", nil)

	nearOrder := suite.seedOrder(kernel.NewUUID(), near.ID(), time.Now().UTC().Add(-time.Hour))
	blindOrder := suite.seedOrder(kernel.NewUUID(), noLocation.ID(), time.Now().UTC().Add(-2*time.Hour))

	// claimed orders stay out of the feed
	claimed := suite.seedOrder(kernel.NewUUID(), near.ID(), time.Now().UTC())
	_, err := suite.orders.Claim(ctx, claimed.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	query, err := queries.NewListAvailableOrdersQuery(
		kernel.NewUUID(), suite.geoPoint(11.310897, 106.050406), nil)
	suite.Require().NoError(err)

	feed, err := suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(feed, 2)

	suite.True(feed[0].ID.IsEqual(nearOrder.ID()), "known distance ranks first")
	suite.Equal("Gan Day", feed[0].MerchantName)
	suite.Require().NotNil(feed[0].DistanceKm)
	suite.InDelta(3.4, *feed[0].DistanceKm, 0.5)
	suite.True(feed[0].DeliveryFee.GreaterThan(decimal.NewFromInt(20000)))

	suite.True(feed[1].ID.IsEqual(blindOrder.ID()), "unknown distance ranks last")
	suite.Nil(feed[1].DistanceKm)
	suite.True(feed[1].DeliveryFee.Equal(decimal.NewFromInt(20000)), "base fee without a distance")
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableOrders_FreshStoredPositionIsUsed() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()

	near := suite.seedMerchant("Gan Day", suite.geoPoint(11.332101, 106.076425))
	nearOrder := suite.seedOrder(kernel.NewUUID(), near.ID(), time.Now().UTC())

	suite.Require().NoError(suite.db.Create(&shipperrepo.ShipperLocationDTO{
		ShipperID: shipperID.Bytes(),
		Lat:       11.310897,
		Lng:       106.050406,
		UpdatedAt: time.Now().UTC().Add(-5 * time.Minute),
	}).Error)

	query, err := queries.NewListAvailableOrdersQuery(shipperID, nil, nil)
	suite.Require().NoError(err)

	feed, err := suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(feed, 1)
	suite.True(feed[0].ID.IsEqual(nearOrder.ID()))
	suite.Require().NotNil(feed[0].DistanceKm, "fresh stored position yields distances")
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableOrders_StalePositionIsIgnored() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()

	near := suite.seedMerchant("Gan Day", suite.geoPoint(11.332101, 106.076425))
	suite.seedOrder(kernel.NewUUID(), near.ID(), time.Now().UTC())

	suite.Require().NoError(suite.db.Create(&shipperrepo.ShipperLocationDTO{
		ShipperID: shipperID.Bytes(),
		Lat:       11.310897,
		Lng:       106.050406,
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}).Error)

	query, err := queries.NewListAvailableOrdersQuery(shipperID, nil, nil)
	suite.Require().NoError(err)

	feed, err := suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(feed, 1)
	suite.Nil(feed[0].DistanceKm, "stale position quotes no distance")
	suite.True(feed[0].DeliveryFee.Equal(decimal.NewFromInt(20000)))
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableOrders_OutOfRadiusIsDropped() {
	ctx := context.Background()

	far := suite.seedMerchant("Xa Lam", suite.geoPoint(10.776900, 106.700900))
	suite.seedOrder(kernel.NewUUID(), far.ID(), time.Now().UTC())

	query, err := queries.NewListAvailableOrdersQuery(
		kernel.NewUUID(), suite.geoPoint(11.310897, 106.050406), nil)
	suite.Require().NoError(err)

	feed, err := suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Empty(feed)
}

func (suite *QueriesIntegrationTestSuite) TestListAvailableOrders_RequestRadiusOverridesDefault() {
	ctx := context.Background()

	near := suite.seedMerchant("Gan Day", suite.geoPoint(11.332101, 106.076425))
	nearOrder := suite.seedOrder(kernel.NewUUID(), near.ID(), time.Now().UTC())

	// the merchant sits about 3.4 km away: inside the default 20 km radius,
	// outside a requested 2 km one
	narrow := 2.0
	query, err := queries.NewListAvailableOrdersQuery(
		kernel.NewUUID(), suite.geoPoint(11.310897, 106.050406), &narrow)
	suite.Require().NoError(err)

	feed, err := suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(feed, "request radius narrows the search")

	wide := 10.0
	query, err = queries.NewListAvailableOrdersQuery(
		kernel.NewUUID(), suite.geoPoint(11.310897, 106.050406), &wide)
	suite.Require().NoError(err)

	feed, err = suite.feedHandler().Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(feed, 1)
	suite.True(feed[0].ID.IsEqual(nearOrder.ID()))
}

func TestQueriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite.Run(t, new(QueriesIntegrationTestSuite))
}
