package journal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Journal is an in-memory, insertion-ordered transaction journal.
// Ids come from a counter that never goes backwards, so a deleted id is never reissued.
type Journal struct {
	mu      sync.RWMutex
	lastID  int64
	records []*Record
	now     func() time.Time
}

func New() *Journal {
	return &Journal{now: time.Now}
}

func validate(r *Record) error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRecord)
	}

	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}

	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidRecord)
	}

	if !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, r.Status)
	}

	return nil
}

func (j *Journal) Create(_ context.Context, params CreateParams) (*Record, error) {
	status := params.Status
	if status == "" {
		status = StatusCompleted
	}

	r := &Record{
		Date:        DateOf(params.Date),
		Description: strings.TrimSpace(params.Description),
		AccountID:   params.AccountID,
		Amount:      params.Amount,
		Status:      status,
		TransferID:  params.TransferID,
	}

	if err := validate(r); err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.lastID++
	r.ID = j.lastID
	r.CreatedAt = j.now()
	j.records = append(j.records, r)

	return r.clone(), nil
}

// List returns copies of the matching records in insertion order.
func (j *Journal) List(_ context.Context, filter ListFilter) []*Record {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*Record, 0, len(j.records))

	for _, r := range j.records {
		if !filter.match(r) {
			continue
		}

		out = append(out, r.clone())
	}

	return out
}

func (j *Journal) Get(_ context.Context, id int64) (*Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	idx := j.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return j.records[idx].clone(), nil
}

// Update merges the non-nil patch fields into the record.
// The merged record is validated before it replaces the stored one.
func (j *Journal) Update(_ context.Context, id int64, patch Patch) (*Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	idx := j.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	merged := j.records[idx].clone()

	if patch.Date != nil {
		merged.Date = DateOf(*patch.Date)
	}

	if patch.Description != nil {
		merged.Description = strings.TrimSpace(*patch.Description)
	}

	if patch.AccountID != nil {
		merged.AccountID = *patch.AccountID
	}

	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}

	if patch.Status != nil {
		merged.Status = *patch.Status
	}

	if err := validate(merged); err != nil {
		return nil, err
	}

	merged.UpdatedAt = new(j.now())
	j.records[idx] = merged

	return merged.clone(), nil
}

func (j *Journal) Delete(_ context.Context, id int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	idx := j.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	j.records = slices.Delete(j.records, idx, idx+1)

	return nil
}

func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.records)
}

func (j *Journal) indexOf(id int64) int {
	return slices.IndexFunc(j.records, func(r *Record) bool { return r.ID == id })
}
