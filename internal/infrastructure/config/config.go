package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read once at startup. No key is required here: each adapter
// checks the keys it needs when the operation runs and reports a
// ConfigurationError naming the missing key.
type Config struct {
	Server
	Log
	AWS
	Redis
	Payment
	Email
	Admin
}

type Server struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	GinMode         string        `envconfig:"GIN_MODE" default:"release"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type AWS struct {
	Region           string `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKeyID      string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	SecretAccessKey  string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`
	BookingsTable    string `envconfig:"BOOKINGS_TABLE" default:"reservas"`
	ServicesTable    string `envconfig:"SERVICES_TABLE" default:"servicios"`
}

// Redis is optional; an empty Addr disables the catalog cache.
type Redis struct {
	Addr            string        `envconfig:"REDIS_ADDR"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

type Payment struct {
	Provider                 string        `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	GatewayMock              string        `envconfig:"PAYMENT_GATEWAY_MOCK"`
	StripeSecretKey          string        `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret      string        `envconfig:"STRIPE_WEBHOOK_SECRET"`
	MercadoPagoAccessToken   string        `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	MercadoPagoWebhookSecret string        `envconfig:"MERCADOPAGO_WEBHOOK_SECRET"`
	Currency                 string        `envconfig:"PAYMENT_CURRENCY" default:"eur"`
	BaseURL                  string        `envconfig:"BASE_URL"`
	Timeout                  time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
}

type Email struct {
	APIURL                  string        `envconfig:"EMAILJS_API_URL" default:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID               string        `envconfig:"EMAILJS_SERVICE_ID"`
	PublicKey               string        `envconfig:"EMAILJS_PUBLIC_KEY"`
	PrivateKey              string        `envconfig:"EMAILJS_PRIVATE_KEY"`
	TemplateCustomerBooking string        `envconfig:"EMAILJS_TEMPLATE_CUSTOMER_BOOKING"`
	TemplateOperatorBooking string        `envconfig:"EMAILJS_TEMPLATE_OPERATOR_BOOKING"`
	TemplateCustomerPayment string        `envconfig:"EMAILJS_TEMPLATE_CUSTOMER_PAYMENT"`
	TemplateOperatorPayment string        `envconfig:"EMAILJS_TEMPLATE_OPERATOR_PAYMENT"`
	OperatorEmail           string        `envconfig:"OPERATOR_EMAIL"`
	FromName                string        `envconfig:"EMAIL_FROM_NAME" default:"LavaCarWash"`
	Timeout                 time.Duration `envconfig:"NOTIFICATION_TIMEOUT" default:"5s"`
}

type Admin struct {
	JWTSecret string        `envconfig:"ADMIN_JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"12h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.Payment.Provider = strings.ToLower(strings.TrimSpace(cfg.Payment.Provider))
	cfg.Payment.Currency = strings.ToLower(strings.TrimSpace(cfg.Payment.Currency))
	return cfg, nil
}

// MockPayments reports whether checkout sessions should be faked locally.
func (p Payment) MockPayments() bool {
	switch strings.ToLower(strings.TrimSpace(p.GatewayMock)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
