package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
)

// Status represents the lifecycle state of a record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidRecord = errors.New("invalid transaction record")
)

// Record is one balance-affecting event posted against an account.
type Record struct {
	ID          int64
	Date        time.Time
	Description string
	AccountID   account.ID
	Amount      int64 // Amount in minor units; positive is a credit
	Status      Status
	TransferID  *uuid.UUID // Shared by both legs of a transfer
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (r *Record) clone() *Record {
	cp := *r
	if r.TransferID != nil {
		cp.TransferID = new(*r.TransferID)
	}

	if r.UpdatedAt != nil {
		cp.UpdatedAt = new(*r.UpdatedAt)
	}

	return &cp
}

type CreateParams struct {
	Date        time.Time
	Description string
	AccountID   account.ID
	Amount      int64
	Status      Status
	TransferID  *uuid.UUID
}

// Patch holds a partial update; nil fields are left untouched.
type Patch struct {
	Date        *time.Time
	Description *string
	AccountID   *account.ID
	Amount      *int64
	Status      *Status
}

func (p Patch) Empty() bool {
	return p.Date == nil && p.Description == nil && p.AccountID == nil && p.Amount == nil && p.Status == nil
}

type ListFilter struct {
	Status    *Status
	AccountID *account.ID
	StartDate *time.Time
	EndDate   *time.Time
}

func (f ListFilter) match(r *Record) bool {
	if f.Status != nil && r.Status != *f.Status {
		return false
	}

	if f.AccountID != nil && r.AccountID != *f.AccountID {
		return false
	}

	if f.StartDate != nil && r.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && r.Date.After(*f.EndDate) {
		return false
	}

	return true
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
