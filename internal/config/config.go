package config

import "os"

// Config holds every external endpoint and secret the process needs. It is
// built once in main and passed by reference; no component reads the
// environment on its own.
type Config struct {
	Port      string
	MySQL     MySQLConfig
	RedisAddr string
	AMQPURL   string
	Stripe    StripeConfig
}

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

type StripeConfig struct {
	SecretKey  string
	APIBase    string
	SuccessURL string
	CancelURL  string
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),
		MySQL: MySQLConfig{
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Host:     getenv("MYSQL_HOST", "localhost"),
			Port:     getenv("MYSQL_PORT", "3306"),
			Database: getenv("MYSQL_DATABASE", "storefront"),
		},
		RedisAddr: getenv("REDIS_HOST", "localhost") + ":6379",
		AMQPURL:   os.Getenv("RABBITMQ_URL"),
		Stripe: StripeConfig{
			SecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
			APIBase:    getenv("STRIPE_API_BASE", "https://api.stripe.com"),
			SuccessURL: getenv("CHECKOUT_SUCCESS_URL", "http://127.0.0.1:5173/success?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:  getenv("CHECKOUT_CANCEL_URL", "http://127.0.0.1:5173/cancel"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
