package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

// Session owns one user's accounts and journal for as long as it is open.
// Nothing outlives it: closing the session drops the ledger.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu     sync.Mutex
	ledger *Service
}

// NewSession builds the account store from configuration, posts the seed
// records to a fresh journal and wires the ledger service over both.
// Seed records are journal entries only; they do not move balances.
func NewSession(ctx context.Context, accounts []account.Config, seed []journal.CreateParams, opts ...Option) (*Session, error) {
	store, err := account.NewStore(accounts)
	if err != nil {
		return nil, fmt.Errorf("building account store: %w", err)
	}

	svc := NewService(store, journal.New(), opts...)

	if _, err := svc.CreateBatch(ctx, seed); err != nil {
		return nil, fmt.Errorf("seeding journal: %w", err)
	}

	s := &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		ledger:    svc,
	}
	s.ledger.log = s.ledger.log.With("session_id", s.ID)

	return s, nil
}

// Ledger returns the session's ledger, or ErrSessionClosed after Close.
func (s *Session) Ledger() (*Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger == nil {
		return nil, ErrSessionClosed
	}

	return s.ledger, nil
}

// Close ends the session. Services already handed out by Ledger fail every
// later call with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger != nil {
		s.ledger.close()
		s.ledger = nil
	}
}
