package ledger

import (
	"context"
	"slices"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

// DashboardRecent is how many records the dashboard shows.
const DashboardRecent = 5

// Entry is a journal record with its account label resolved at read time.
type Entry struct {
	*journal.Record
	AccountLabel string
}

type Dashboard struct {
	Total    int64
	Accounts []account.Account
	Recent   []Entry
}

// SortForDisplay orders records newest date first. Records sharing a date keep
// their insertion order. The input slice is not modified.
func SortForDisplay(records []*journal.Record) []*journal.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b *journal.Record) int {
		return b.Date.Compare(a.Date)
	})

	return out
}

// Entries returns the filtered journal in display order with account labels.
func (s *Service) Entries(ctx context.Context, filter journal.ListFilter) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.entries(ctx, filter, true, 0), nil
}

// Labeled returns the filtered journal in insertion order with account labels.
func (s *Service) Labeled(ctx context.Context, filter journal.ListFilter) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.entries(ctx, filter, false, 0), nil
}

// Recent returns the n most recently dated entries.
func (s *Service) Recent(ctx context.Context, n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.entries(ctx, journal.ListFilter{}, true, n), nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Total:    s.accounts.Total(ctx),
		Accounts: s.accounts.List(ctx),
		Recent:   s.entries(ctx, journal.ListFilter{}, true, DashboardRecent),
	}, nil
}

func (s *Service) entries(ctx context.Context, filter journal.ListFilter, display bool, limit int) []Entry {
	records := s.journal.List(ctx, filter)
	if display {
		records = SortForDisplay(records)
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	labels := make(map[account.ID]string)
	for _, a := range s.accounts.List(ctx) {
		labels[a.ID] = a.Label
	}

	out := make([]Entry, len(records))
	for i, r := range records {
		label, ok := labels[r.AccountID]
		if !ok {
			label = string(r.AccountID)
		}

		out[i] = Entry{Record: r, AccountLabel: label}
	}

	return out
}
