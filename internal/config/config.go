package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"EliteKitchen"`
	}

	// API is the record backend and mailer endpoint root consumed by the
	// client. The default matches the local development server.
	API struct {
		BaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:4000/api"`
	}

	Invoice struct {
		Issuer    string `envconfig:"INVOICE_ISSUER" default:"Elite Kitchen"`
		OutputDir string `envconfig:"INVOICE_OUTPUT_DIR" default:"./invoices"`
	}

	// Server configures cmd/devserver only.
	Server struct {
		Port      int    `envconfig:"PORT" default:"4000"`
		OutboxDir string `envconfig:"OUTBOX_DIR" default:"./outbox"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
