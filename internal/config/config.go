package config

import (
	"os"
	"strconv"
)

// Config holds runtime knobs read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// Pricing for the checkout/order flow.
	DeliveryCharge  float64
	FreeDeliveryMin float64

	// Human-readable delivery estimate stamped on new orders.
	EstimatedDelivery string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatenv(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		Addr:              getenv("STOREFRONT_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		DeliveryCharge:    floatenv("DELIVERY_CHARGE", 25),
		FreeDeliveryMin:   floatenv("FREE_DELIVERY_MIN", 500),
		EstimatedDelivery: getenv("ESTIMATED_DELIVERY", "3-5 business days"),
	}
}
