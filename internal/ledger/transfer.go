package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

type TransferRequest struct {
	From   account.ID
	To     account.ID
	Amount int64 // Amount in minor units
}

// Transfer is the matched debit/credit pair produced by one transfer.
type Transfer struct {
	ID     uuid.UUID
	Debit  *journal.Record
	Credit *journal.Record
}

func (r TransferRequest) validate() error {
	if r.From == "" || r.To == "" {
		return ErrMissingField
	}

	if r.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	if r.From == r.To {
		return ErrSameAccount
	}

	return nil
}

// Transfer moves funds between two accounts and posts the two journal records.
// Either all four steps happen or none do: validation failures return before
// any mutation, and a failure while applying is rolled back before returning.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	from, err := s.accounts.Get(ctx, req.From)
	if err != nil {
		return nil, err
	}

	to, err := s.accounts.Get(ctx, req.To)
	if err != nil {
		return nil, err
	}

	if from.Balance < req.Amount {
		return nil, fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from.ID, from.Balance, req.Amount)
	}

	t, err := s.apply(ctx, req, from, to)
	if err != nil {
		s.log.Error("transfer failed", "from", req.From, "to", req.To, "amount", req.Amount, "error", err)
		return nil, err
	}

	s.log.Info("transfer completed",
		"transfer_id", t.ID,
		"from", req.From,
		"to", req.To,
		"amount", req.Amount,
		"debit_id", t.Debit.ID,
		"credit_id", t.Credit.ID,
	)

	return t, nil
}

func (s *Service) apply(ctx context.Context, req TransferRequest, from, to account.Account) (*Transfer, error) {
	var undo []func() error

	rollback := func(cause error) error {
		for i := len(undo) - 1; i >= 0; i-- {
			if err := undo[i](); err != nil {
				cause = errors.Join(cause, fmt.Errorf("rollback: %w", err))
			}
		}

		return cause
	}

	if err := s.accounts.Adjust(ctx, from.ID, -req.Amount); err != nil {
		return nil, rollback(fmt.Errorf("debiting %s: %w", from.ID, err))
	}

	undo = append(undo, func() error { return s.accounts.Adjust(ctx, from.ID, req.Amount) })

	if err := s.accounts.Adjust(ctx, to.ID, req.Amount); err != nil {
		return nil, rollback(fmt.Errorf("crediting %s: %w", to.ID, err))
	}

	undo = append(undo, func() error { return s.accounts.Adjust(ctx, to.ID, -req.Amount) })

	id := uuid.New()
	date := journal.DateOf(s.now())

	debit, err := s.journal.Create(ctx, journal.CreateParams{
		Date:        date,
		Description: "Transfer to " + to.Label,
		AccountID:   from.ID,
		Amount:      -req.Amount,
		Status:      journal.StatusCompleted,
		TransferID:  &id,
	})
	if err != nil {
		return nil, rollback(fmt.Errorf("posting debit record: %w", err))
	}

	undo = append(undo, func() error { return s.journal.Delete(ctx, debit.ID) })

	credit, err := s.journal.Create(ctx, journal.CreateParams{
		Date:        date,
		Description: "Transfer from " + from.Label,
		AccountID:   to.ID,
		Amount:      req.Amount,
		Status:      journal.StatusCompleted,
		TransferID:  &id,
	})
	if err != nil {
		return nil, rollback(fmt.Errorf("posting credit record: %w", err))
	}

	return &Transfer{ID: id, Debit: debit, Credit: credit}, nil
}
