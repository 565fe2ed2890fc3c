package cmd

import "time"

// Config carries everything main reads from the environment. Dispatch
// tunables have defaults matching the product's fee schedule; everything else
// must be set.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL   string
	JWTSecret string

	// Dispatch tunables.
	DeliveryFeeBase   int64
	DeliveryFeePerKm  int64
	DispatchRadiusKm  float64
	LocationTTL       time.Duration
	ReconcileSchedule string
}
