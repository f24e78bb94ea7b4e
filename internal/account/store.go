package account

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Store is an in-memory account store. It is safe for concurrent use.
// It does not check for insufficient funds; callers validate before adjusting.
// Every balance and the sum of all balances always fit in an int64.
type Store struct {
	mu       sync.RWMutex
	order    []ID
	accounts map[ID]*Account
}

// NewStore builds a store from the fixed account configuration.
func NewStore(configs []Config) (*Store, error) {
	s := &Store{
		order:    make([]ID, 0, len(configs)),
		accounts: make(map[ID]*Account, len(configs)),
	}

	var total int64

	for _, c := range configs {
		if c.ID == "" {
			return nil, fmt.Errorf("account config: empty id")
		}

		if _, dup := s.accounts[c.ID]; dup {
			return nil, fmt.Errorf("account config: duplicate id %q", c.ID)
		}

		if c.InitialBalance < 0 {
			return nil, fmt.Errorf("account config: %q has negative initial balance", c.ID)
		}

		sum, ok := add(total, c.InitialBalance)
		if !ok {
			return nil, fmt.Errorf("account config: %w: total of initial balances", ErrBalanceOverflow)
		}

		total = sum

		s.order = append(s.order, c.ID)
		s.accounts[c.ID] = &Account{
			ID:      c.ID,
			Number:  c.Number,
			Label:   c.Label,
			Balance: c.InitialBalance,
		}
	}

	return s, nil
}

// Get returns a copy of the account.
func (s *Store) Get(_ context.Context, id ID) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %q", ErrUnknownAccount, id)
	}

	return *a, nil
}

func (s *Store) Balance(ctx context.Context, id ID) (int64, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	return a.Balance, nil
}

// Adjust applies balance += delta to a single account. It fails without
// changing anything if the balance or the total would leave the int64 range.
func (s *Store) Adjust(_ context.Context, id ID, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, id)
	}

	balance, ok := add(a.Balance, delta)
	if !ok {
		return fmt.Errorf("%w: %q", ErrBalanceOverflow, id)
	}

	if _, ok := add(s.total(), delta); !ok {
		return fmt.Errorf("%w: total", ErrBalanceOverflow)
	}

	a.Balance = balance

	return nil
}

// List returns copies of all accounts in configuration order.
func (s *Store) List(_ context.Context) []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.accounts[id])
	}

	return out
}

// Total is the sum of all balances.
func (s *Store) Total(_ context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total()
}

// total must be called with s.mu held.
func (s *Store) total() int64 {
	var total int64
	for _, a := range s.accounts {
		total += a.Balance
	}

	return total
}

// add returns a+b and false if the sum overflows.
func add(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}

	return a + b, true
}
