package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.Seed.Demo)

	accounts, err := cfg.Accounts()
	require.NoError(t, err)
	assert.Equal(t, []account.Config{
		{ID: account.IDSavings, Number: "SAV1234", Label: "Savings Account", InitialBalance: 150_000_000},
		{ID: account.IDChecking, Number: "CHK5678", Label: "Checking Account", InitialBalance: 100_000_000},
	}, accounts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHECKING_LABEL", "Everyday")
	t.Setenv("CHECKING_BALANCE", "12.34")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://example.test")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.test"}, cfg.Server.AllowedOrigins)

	accounts, err := cfg.Accounts()
	require.NoError(t, err)
	assert.Equal(t, "Everyday", accounts[1].Label)
	assert.Equal(t, int64(1234), accounts[1].InitialBalance)
}

func TestAccounts_BadBalance(t *testing.T) {
	t.Setenv("SAVINGS_BALANCE", "lots")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = cfg.Accounts()
	assert.Error(t, err)
}
