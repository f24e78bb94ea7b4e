package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

var header = []string{"ID", "Date", "Description", "Account", "Amount", "Status"}

// Service renders the journal for download.
type Service struct {
	ledger *ledger.Service
}

func NewService(l *ledger.Service) *Service {
	return &Service{ledger: l}
}

// WriteCSV writes the filtered journal in display order as semicolon-separated
// values that the importer's journal profile reads back. It returns the number
// of records written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter journal.ListFilter) (int, error) {
	entries, err := s.ledger.Entries(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing journal: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.Format("2006-01-02"),
			e.Description,
			string(e.AccountID),
			money.Format(e.Amount),
			string(e.Status),
		}

		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing record %d: %w", e.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(entries), nil
}

// Summary creates a plain-text statement of the filtered journal.
func (s *Service) Summary(ctx context.Context, filter journal.ListFilter, currency string) (string, error) {
	entries, err := s.ledger.Entries(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("listing journal: %w", err)
	}

	var sb strings.Builder

	for _, e := range entries {
		sign := "-"
		if e.Amount > 0 {
			sign = "+"
		}

		abs := e.Amount
		if abs < 0 {
			abs = -abs
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s%s%s | %s\n",
			e.Date.Format("2006-01-02"), e.Description, e.AccountLabel, sign, currency, money.Format(abs), e.Status)
	}

	return sb.String(), nil
}
