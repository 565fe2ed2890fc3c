package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"mealdrop/cmd"
	httpadapter "mealdrop/internal/adapters/in/http"
	"mealdrop/internal/adapters/out/amqp"
	"mealdrop/internal/adapters/out/postgres/inventoryrepo"
	"mealdrop/internal/adapters/out/postgres/merchantrepo"
	"mealdrop/internal/adapters/out/postgres/orderrepo"
	"mealdrop/internal/adapters/out/postgres/shipperrepo"
	"mealdrop/internal/core/ports"
	"mealdrop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	publisher := createPublisher(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReconcileStockCommandHandler(),
		configs.ReconcileSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		AmqpURL:   os.Getenv("AMQP_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DeliveryFeeBase:   envInt("DELIVERY_FEE_BASE", 20000),
		DeliveryFeePerKm:  envInt("DELIVERY_FEE_PER_KM", 5000),
		DispatchRadiusKm:  envFloat("DISPATCH_RADIUS_KM", 20),
		LocationTTL:       envDuration("LOCATION_TTL", 15*time.Minute),
		ReconcileSchedule: envOr("RECONCILE_SCHEDULE", "*/10 * * * *"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&inventoryrepo.MenuItemDTO{},
		&merchantrepo.MerchantDTO{},
		&shipperrepo.ShipperLocationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func createPublisher(configs cmd.Config, logger *slog.Logger) ports.OrderEventPublisher {
	if configs.AmqpURL == "" {
		logger.Warn("AMQP_URL not set, order events will not be published")
		return nil
	}

	publisher, err := amqp.NewPublisher(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	checkoutHandler := app.CreateCheckoutOrderCommandHandler()
	setStatusHandler := app.CreateSetOrderStatusCommandHandler()
	cancelHandler := app.CreateCancelOrderCommandHandler()
	claimHandler := app.CreateClaimOrderCommandHandler()
	completeHandler := app.CreateCompleteDeliveryCommandHandler()
	refundHandler := app.CreateRefundOrderCommandHandler()
	updateLocationHandler := app.CreateUpdateShipperLocationCommandHandler()

	server := httpadapter.NewServer(
		&checkoutHandler,
		&setStatusHandler,
		&cancelHandler,
		&claimHandler,
		&completeHandler,
		&refundHandler,
		&updateLocationHandler,
		app.CreateGetOrderQueryHandler(),
		app.CreateListMyOrdersQueryHandler(),
		app.CreateListAvailableOrdersQueryHandler(),
	)
	server.RegisterRoutes(e, httpadapter.AuthRequired(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
