package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Pocketbank"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Currency string `envconfig:"CURRENCY_SYMBOL" default:"₹"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		File   string `envconfig:"LOG_FILE" default:"pocketbank.log"` // TUI only
	}

	Seed struct {
		File string `envconfig:"SEED_FILE"`
		Demo bool   `envconfig:"SEED_DEMO" default:"true"`
	}

	Savings struct {
		Number  string `envconfig:"SAVINGS_NUMBER" default:"SAV1234"`
		Label   string `envconfig:"SAVINGS_LABEL" default:"Savings Account"`
		Balance string `envconfig:"SAVINGS_BALANCE" default:"1500000"` // Major units
	}

	Checking struct {
		Number  string `envconfig:"CHECKING_NUMBER" default:"CHK5678"`
		Label   string `envconfig:"CHECKING_LABEL" default:"Checking Account"`
		Balance string `envconfig:"CHECKING_BALANCE" default:"1000000"` // Major units
	}
}

// Accounts converts the configured accounts into the ledger's fixed account set.
func (c *Config) Accounts() ([]account.Config, error) {
	type entry struct {
		id                     account.ID
		number, label, balance string
	}

	entries := []entry{
		{account.IDSavings, c.Savings.Number, c.Savings.Label, c.Savings.Balance},
		{account.IDChecking, c.Checking.Number, c.Checking.Label, c.Checking.Balance},
	}

	out := make([]account.Config, 0, len(entries))

	for _, e := range entries {
		balance, err := money.Parse(e.balance)
		if err != nil {
			return nil, fmt.Errorf("%s balance: %w", e.id, err)
		}

		out = append(out, account.Config{
			ID:             e.id,
			Number:         e.number,
			Label:          e.label,
			InitialBalance: balance,
		})
	}

	return out, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
