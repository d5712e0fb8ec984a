package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"adpilot/internal/config/configs"
)

// Config aggregates all configuration sections for the automation. Fields
// are populated from environment variables using the caarlos0/env library;
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. A .env file in the working directory is loaded first
// when present. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). Useful for
	// logging context.
	Env string `env:"ENV" envDefault:"prod"`

	// Amazon holds Amazon Advertising API credentials (AMAZON_ prefix).
	Amazon configs.Amazon `envPrefix:"AMAZON_"`

	// Rules holds the budget optimization business rules (RULES_ prefix).
	Rules configs.Rules `envPrefix:"RULES_"`

	// Sheets configures the spreadsheet reporting sink (SHEETS_ prefix).
	Sheets configs.Sheets `envPrefix:"SHEETS_"`

	// Psql configures the analytical warehouse (PSQL_ prefix).
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Alerts configures email and SMS notification (ALERT_ prefix).
	Alerts configs.Alerts `envPrefix:"ALERT_"`

	// HTTP holds configuration for the trigger server (HTTP_ prefix).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_ prefix).
	Log configs.Logger `envPrefix:"LOG_"`

	// Schedule configures the optional built-in cron trigger (SCHEDULE_
	// prefix).
	Schedule configs.Schedule `envPrefix:"SCHEDULE_"`
}

// Load reads configuration from the environment into a Config and validates
// the business rules once, before anything touches the ads platform. A
// missing required credential or an incomplete seasonal table fails here.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Rules.Domain().Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
