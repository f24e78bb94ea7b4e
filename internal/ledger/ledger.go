package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=ledger
type AccountStore interface {
	Get(ctx context.Context, id account.ID) (account.Account, error)
	Balance(ctx context.Context, id account.ID) (int64, error)
	Adjust(ctx context.Context, id account.ID, delta int64) error
	List(ctx context.Context) []account.Account
	Total(ctx context.Context) int64
}

type Journal interface {
	Create(ctx context.Context, params journal.CreateParams) (*journal.Record, error)
	List(ctx context.Context, filter journal.ListFilter) []*journal.Record
	Get(ctx context.Context, id int64) (*journal.Record, error)
	Update(ctx context.Context, id int64, patch journal.Patch) (*journal.Record, error)
	Delete(ctx context.Context, id int64) error
}

// Service is the ledger's single entry point. Every operation runs under one
// mutex, so a transfer's debit, credit and both journal postings are never
// interleaved with another call.
type Service struct {
	mu       sync.Mutex
	accounts AccountStore
	journal  Journal
	now      func() time.Time
	log      *slog.Logger
	closed   bool
}

type Option func(*Service)

// WithClock overrides the clock used to date transfer records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(accounts AccountStore, j Journal, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		journal:  j,
		now:      time.Now,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// close rejects every later call with ErrSessionClosed.
func (s *Service) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

// open must be called with s.mu held.
func (s *Service) open() error {
	if s.closed {
		return ErrSessionClosed
	}

	return nil
}

func (s *Service) Balance(ctx context.Context, id account.ID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return 0, err
	}

	return s.accounts.Balance(ctx, id)
}

func (s *Service) TotalBalance(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return 0, err
	}

	return s.accounts.Total(ctx), nil
}

func (s *Service) Account(ctx context.Context, id account.ID) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return account.Account{}, err
	}

	return s.accounts.Get(ctx, id)
}

func (s *Service) Accounts(ctx context.Context) ([]account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.accounts.List(ctx), nil
}

// CreateTransaction posts a stand-alone record. It does not move balances.
func (s *Service) CreateTransaction(ctx context.Context, params journal.CreateParams) (*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	if _, err := s.accounts.Get(ctx, params.AccountID); err != nil {
		return nil, err
	}

	return s.journal.Create(ctx, params)
}

// Transactions returns the journal in insertion order.
func (s *Service) Transactions(ctx context.Context, filter journal.ListFilter) ([]*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.journal.List(ctx, filter), nil
}

func (s *Service) Transaction(ctx context.Context, id int64) (*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	return s.journal.Get(ctx, id)
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, patch journal.Patch) (*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	if patch.AccountID != nil {
		if _, err := s.accounts.Get(ctx, *patch.AccountID); err != nil {
			return nil, err
		}
	}

	r, err := s.journal.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return r, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}

	if err := s.journal.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

// CreateBatch posts several stand-alone records. If any record is rejected,
// the ones already posted by this call are removed again.
func (s *Service) CreateBatch(ctx context.Context, params []journal.CreateParams) ([]*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	for i, p := range params {
		if _, err := s.accounts.Get(ctx, p.AccountID); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	created := make([]*journal.Record, 0, len(params))

	for i, p := range params {
		r, err := s.journal.Create(ctx, p)
		if err != nil {
			for _, c := range created {
				if delErr := s.journal.Delete(ctx, c.ID); delErr != nil {
					err = errors.Join(err, fmt.Errorf("rollback: %w", delErr))
				}
			}

			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		created = append(created, r)
	}

	return created, nil
}
