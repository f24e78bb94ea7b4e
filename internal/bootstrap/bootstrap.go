// Package bootstrap builds the ledger session shared by the API and the TUI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/config"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

// Session opens a ledger session with the configured accounts. The journal is
// seeded with the demo records when enabled, followed by the rows of the seed
// file, if any. Seed file rows without an account go to checking.
func Session(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ledger.Session, error) {
	accounts, err := cfg.Accounts()
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	var seed []journal.CreateParams
	if cfg.Seed.Demo {
		seed = append(seed, ledger.DemoSeed()...)
	}

	if cfg.Seed.File != "" {
		records, err := readSeedFile(cfg.Seed.File)
		if err != nil {
			return nil, err
		}

		seed = append(seed, records...)
	}

	session, err := ledger.NewSession(ctx, accounts, seed, ledger.WithLogger(log))
	if err != nil {
		return nil, err
	}

	log.Info("ledger session opened",
		"session_id", session.ID,
		"accounts", len(accounts),
		"seeded", len(seed),
	)

	return session, nil
}

func readSeedFile(path string) ([]journal.CreateParams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	result, err := importer.NewParser().Parse(f, account.IDChecking)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	return result.Records, nil
}
