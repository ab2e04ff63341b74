package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"

	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
	ProviderMock        = "mock"
)

// Config is resolved once at startup: defaults, then the optional YAML file,
// then environment variables.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Store          StoreConfig          `yaml:"store"`
	Payments       PaymentsConfig       `yaml:"payments"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Alerts         AlertsConfig         `yaml:"alerts"`
	Company        CompanyConfig        `yaml:"company"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type StoreConfig struct {
	Driver        string         `yaml:"driver"` // "dynamodb" or "postgres"
	QuotesTable   string         `yaml:"quotes_table"`
	PaymentsTable string         `yaml:"payments_table"`
	DynamoDB      DynamoDBConfig `yaml:"dynamodb"`
	Postgres      PostgresConfig `yaml:"postgres"`
}

type DynamoDBConfig struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type PaymentsConfig struct {
	Provider               string        `yaml:"provider"` // "stripe", "mercadopago" or "mock"
	Currency               string        `yaml:"currency"`
	Timeout                time.Duration `yaml:"timeout"`
	BreakerMaxFailures     uint32        `yaml:"breaker_max_failures"`
	BreakerOpenTimeout     time.Duration `yaml:"breaker_open_timeout"`
	StripeSecretKey        string        `yaml:"stripe_secret_key"`
	MercadoPagoAccessToken string        `yaml:"mercadopago_access_token"`
}

type ReconciliationConfig struct {
	Schedule    string `yaml:"schedule"`
	BatchSize   int    `yaml:"batch_size"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type AlertsConfig struct {
	SentryDSN      string `yaml:"sentry_dsn"`
	Environment    string `yaml:"environment"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	OperatorEmail  string `yaml:"operator_email"`
}

type CompanyConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Website string `yaml:"website"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, GinMode: "release"},
		Store: StoreConfig{
			Driver:        StoreDynamoDB,
			QuotesTable:   "quote_requests",
			PaymentsTable: "payment_records",
			DynamoDB: DynamoDBConfig{
				Region:          "us-east-1",
				AccessKeyID:     "local",
				SecretAccessKey: "local",
			},
		},
		Payments: PaymentsConfig{
			Provider:           ProviderStripe,
			Currency:           "usd",
			Timeout:            10 * time.Second,
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Reconciliation: ReconciliationConfig{
			Schedule:    "@every 1m",
			BatchSize:   25,
			MaxAttempts: 10,
		},
		Alerts: AlertsConfig{
			Environment: "development",
			FromEmail:   "no-reply@example.com",
		},
		Company: CompanyConfig{Name: "BuildQuote Construction"},
	}
}

// Load builds the configuration. configPath may be empty, in which case only
// defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() error {
	var errs []error

	setString(&c.Server.GinMode, "GIN_MODE")
	errs = append(errs, setInt(&c.Server.Port, "PORT"))

	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.QuotesTable, "QUOTES_TABLE")
	setString(&c.Store.PaymentsTable, "PAYMENTS_TABLE")
	setString(&c.Store.DynamoDB.Region, "AWS_REGION")
	setString(&c.Store.DynamoDB.Endpoint, "DYNAMODB_ENDPOINT")
	setString(&c.Store.DynamoDB.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.Store.DynamoDB.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.Store.Postgres.DSN, "DATABASE_URL")

	setString(&c.Payments.Provider, "PAYMENT_PROVIDER")
	setString(&c.Payments.Currency, "PAYMENT_CURRENCY")
	setString(&c.Payments.StripeSecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Payments.MercadoPagoAccessToken, "MERCADOPAGO_ACCESS_TOKEN")
	errs = append(errs,
		setDuration(&c.Payments.Timeout, "PAYMENT_GATEWAY_TIMEOUT"),
		setUint32(&c.Payments.BreakerMaxFailures, "PAYMENT_BREAKER_MAX_FAILURES"),
		setDuration(&c.Payments.BreakerOpenTimeout, "PAYMENT_BREAKER_OPEN_TIMEOUT"),
	)
	if isTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) {
		c.Payments.Provider = ProviderMock
	}

	setString(&c.Reconciliation.Schedule, "RECONCILIATION_SCHEDULE")
	errs = append(errs,
		setInt(&c.Reconciliation.BatchSize, "RECONCILIATION_BATCH_SIZE"),
		setInt(&c.Reconciliation.MaxAttempts, "RECONCILIATION_MAX_ATTEMPTS"),
	)

	setString(&c.Alerts.SentryDSN, "SENTRY_DSN")
	setString(&c.Alerts.Environment, "APP_ENV")
	setString(&c.Alerts.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&c.Alerts.FromEmail, "ALERTS_FROM_EMAIL")
	setString(&c.Alerts.OperatorEmail, "OPERATOR_EMAIL")

	setString(&c.Company.Name, "COMPANY_NAME")
	setString(&c.Company.Address, "COMPANY_ADDRESS")
	setString(&c.Company.Phone, "COMPANY_PHONE")
	setString(&c.Company.Email, "COMPANY_EMAIL")
	setString(&c.Company.Website, "COMPANY_WEBSITE")

	return errors.Join(errs...)
}

// Validate checks the configuration and normalizes enumerated values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDynamoDB:
		if c.Store.DynamoDB.Region == "" {
			return fmt.Errorf("dynamodb region is required")
		}
	case StorePostgres:
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}
	if c.Store.QuotesTable == "" || c.Store.PaymentsTable == "" {
		return fmt.Errorf("quotes and payments table names are required")
	}

	c.Payments.Provider = strings.ToLower(strings.TrimSpace(c.Payments.Provider))
	switch c.Payments.Provider {
	case ProviderStripe:
		if c.Payments.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required for the stripe provider")
		}
	case ProviderMercadoPago:
		if c.Payments.MercadoPagoAccessToken == "" {
			return fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is required for the mercadopago provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown payment provider: %q", c.Payments.Provider)
	}

	c.Payments.Currency = strings.ToLower(strings.TrimSpace(c.Payments.Currency))
	if len(c.Payments.Currency) != 3 {
		return fmt.Errorf("payment currency must be a 3-letter ISO code: %q", c.Payments.Currency)
	}
	if c.Payments.Timeout <= 0 {
		return fmt.Errorf("payment gateway timeout must be positive")
	}
	if c.Payments.BreakerMaxFailures == 0 {
		return fmt.Errorf("breaker max failures must be at least 1")
	}

	if c.Reconciliation.Schedule == "" {
		return fmt.Errorf("reconciliation schedule is required")
	}
	if c.Reconciliation.BatchSize <= 0 || c.Reconciliation.MaxAttempts <= 0 {
		return fmt.Errorf("reconciliation batch size and max attempts must be positive")
	}

	if c.Alerts.SendGridAPIKey != "" && c.Alerts.OperatorEmail == "" {
		return fmt.Errorf("OPERATOR_EMAIL is required when SENDGRID_API_KEY is set")
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setUint32(dst *uint32, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = uint32(n)
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
