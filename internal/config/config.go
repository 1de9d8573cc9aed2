package config

import (
	"errors"
	"fmt"
	"time"

	"campus-events/internal/auth"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Services  ServicesConfig
	Telemetry TelemetryConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	Env            string        `env:"ENV" envDefault:"development"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Path           string `env:"DB_PATH" envDefault:"campus-events.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"internal/database/migrations"`
}

type AuthConfig struct {
	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
}

// ServicesConfig holds the base URLs of the collaborator services.
// An empty PaymentURL disables payment authorization.
type ServicesConfig struct {
	OfferingURL  string        `env:"OFFERING_SERVICE_URL" envDefault:"http://localhost:3002"`
	PromotionURL string        `env:"PROMOTION_SERVICE_URL" envDefault:"http://localhost:3004"`
	IdentityURL  string        `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:3000"`
	TicketURL    string        `env:"TICKET_SERVICE_URL" envDefault:"http://localhost:3003"`
	PaymentURL   string        `env:"PAYMENT_SERVICE_URL"`
	Timeout      time.Duration `env:"SERVICE_TIMEOUT" envDefault:"5s"`
	// APIKey authenticates service-to-service calls such as ticket issuance
	APIKey string `env:"SERVICE_API_KEY"`
}

type TelemetryConfig struct {
	ServiceName  string `env:"OTEL_SERVICE_NAME"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load reads .env files if present and fills Config from the environment.
func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Address returns host:port for the HTTP listener
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// ServiceName returns the telemetry service name, falling back to name
func (c *Config) ServiceName(name string) string {
	if c.Telemetry.ServiceName != "" {
		return c.Telemetry.ServiceName
	}
	return name
}

// TokenConfig returns the signing settings for auth.NewTokenManager
func (c *Config) TokenConfig() auth.Config {
	return auth.Config{
		AccessSecret:  c.Auth.AccessSecret,
		RefreshSecret: c.Auth.RefreshSecret,
		AccessTTL:     c.Auth.AccessTTL,
		RefreshTTL:    c.Auth.RefreshTTL,
	}
}

// RequireServiceKey fails unless SERVICE_API_KEY is set. Only the services
// that issue or consume tickets need it.
func (c *Config) RequireServiceKey() error {
	if c.Services.APIKey == "" {
		return errors.New("SERVICE_API_KEY is required")
	}
	return nil
}

// Validate checks the settings the services cannot run without
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}

	if c.Auth.AccessTTL >= c.Auth.RefreshTTL {
		return errors.New("ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}

	if c.Services.Timeout <= 0 {
		return errors.New("SERVICE_TIMEOUT must be positive")
	}

	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	if c.IsDevelopment() {
		return nil
	}

	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return nil
}
