package cmd

import (
	"log/slog"

	"mealdrop/internal/adapters/out/postgres"
	"mealdrop/internal/core/application/usecases/commands"
	"mealdrop/internal/core/application/usecases/queries"
	"mealdrop/internal/core/domain/services"
	"mealdrop/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Each Create method
// hands out a fully constructed handler; the narrow UoW factory adapters keep
// handlers ignorant of the concrete unit of work.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCheckoutOrderCommandHandler() commands.CheckoutOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.stockUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShipperLocationCommandHandler() commands.UpdateShipperLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipperLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileStockCommandHandler() commands.ReconcileStockCommandHandler {
	return commands.NewReconcileStockCommandHandler(c.stockUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMyOrdersQueryHandler() queries.ListMyOrdersQueryHandler {
	return queries.NewListMyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	ranker := services.NewOrderRanker(
		c.config.DispatchRadiusKm,
		decimal.NewFromInt(c.config.DeliveryFeeBase),
		decimal.NewFromInt(c.config.DeliveryFeePerKm),
	)
	return queries.NewListAvailableOrdersQueryHandler(c.gormDB, ranker, c.config.LocationTTL)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}
