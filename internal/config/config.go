package config

import (
	"github.com/caarlos0/env/v11"

	"minar-ads/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection backing the document
	// store. Environment variables prefixed with PSQL_ will populate this
	// struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Geocoder configures the address-resolution client (GEOCODER_*).
	Geocoder configs.Geocoder `envPrefix:"GEOCODER_"`

	// Billing configures the purchase-verification client (BILLING_*).
	Billing configs.Billing `envPrefix:"BILLING_"`

	// Quota configures the periodic free slot (QUOTA_*).
	Quota configs.Quota `envPrefix:"QUOTA_"`

	// Admin lists the caller keys with moderation rights (ADMIN_*).
	Admin configs.Admin `envPrefix:"ADMIN_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
