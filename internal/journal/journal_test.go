package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func salary() journal.CreateParams {
	return journal.CreateParams{
		Date:        date(2024, 3, 15),
		Description: "Salary Deposit",
		AccountID:   account.IDSavings,
		Amount:      50000,
		Status:      journal.StatusCompleted,
	}
}

func TestJournal_Create(t *testing.T) {
	type testCase struct {
		name    string
		params  journal.CreateParams
		wantErr bool
		verify  func(t *testing.T, r *journal.Record)
	}

	tests := []testCase{
		{
			name:   "Success",
			params: salary(),
			verify: func(t *testing.T, r *journal.Record) {
				assert.Equal(t, int64(1), r.ID)
				assert.Equal(t, "Salary Deposit", r.Description)
				assert.Equal(t, date(2024, 3, 15), r.Date)
				assert.False(t, r.CreatedAt.IsZero())
			},
		},
		{
			name: "DefaultsStatusAndTruncatesDate",
			params: journal.CreateParams{
				Date:        time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
				Description: "Coffee",
				AccountID:   account.IDChecking,
				Amount:      -350,
			},
			verify: func(t *testing.T, r *journal.Record) {
				assert.Equal(t, journal.StatusCompleted, r.Status)
				assert.Equal(t, date(2024, 3, 15), r.Date)
			},
		},
		{
			name:    "EmptyDescription",
			params:  journal.CreateParams{Date: date(2024, 3, 15), Description: "  ", AccountID: account.IDSavings},
			wantErr: true,
		},
		{
			name:    "MissingDate",
			params:  journal.CreateParams{Description: "x", AccountID: account.IDSavings},
			wantErr: true,
		},
		{
			name:    "MissingAccount",
			params:  journal.CreateParams{Date: date(2024, 3, 15), Description: "x"},
			wantErr: true,
		},
		{
			name:    "UnknownStatus",
			params:  journal.CreateParams{Date: date(2024, 3, 15), Description: "x", AccountID: account.IDSavings, Status: "void"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := journal.New()
			got, err := j.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, journal.ErrInvalidRecord)
				assert.Nil(t, got)
				assert.Zero(t, j.Len())

				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestJournal_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	j := journal.New()

	for range 3 {
		_, err := j.Create(ctx, salary())
		require.NoError(t, err)
	}

	require.NoError(t, j.Delete(ctx, 3))
	require.NoError(t, j.Delete(ctx, 1))

	r, err := j.Create(ctx, salary())
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.ID, "a shrinking journal must not hand out an old id")

	seen := map[int64]bool{}
	for _, rec := range j.List(ctx, journal.ListFilter{}) {
		assert.False(t, seen[rec.ID], "duplicate id %d", rec.ID)
		seen[rec.ID] = true
	}

	assert.Len(t, seen, 2)
}

func TestJournal_ListInsertionOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	j := journal.New()

	first, err := j.Create(ctx, salary())
	require.NoError(t, err)

	second, err := j.Create(ctx, journal.CreateParams{
		Date:        date(2024, 3, 14),
		Description: "Utility Bill Payment",
		AccountID:   account.IDChecking,
		Amount:      -2500,
	})
	require.NoError(t, err)

	list := j.List(ctx, journal.ListFilter{})
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list[0].Amount = 1
	again, err := j.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), again.Amount)
}

func TestJournal_ListFilter(t *testing.T) {
	ctx := context.Background()
	j := journal.New()

	_, err := j.Create(ctx, salary())
	require.NoError(t, err)
	_, err = j.Create(ctx, journal.CreateParams{
		Date:        date(2024, 4, 2),
		Description: "Rent",
		AccountID:   account.IDChecking,
		Amount:      -40000,
		Status:      journal.StatusPending,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		filter  journal.ListFilter
		wantLen int
	}{
		{name: "All", filter: journal.ListFilter{}, wantLen: 2},
		{name: "Status", filter: journal.ListFilter{Status: new(journal.StatusPending)}, wantLen: 1},
		{name: "Account", filter: journal.ListFilter{AccountID: new(account.IDSavings)}, wantLen: 1},
		{name: "StartDate", filter: journal.ListFilter{StartDate: new(date(2024, 4, 1))}, wantLen: 1},
		{name: "EndDate", filter: journal.ListFilter{EndDate: new(date(2024, 3, 15))}, wantLen: 1},
		{name: "Empty range", filter: journal.ListFilter{StartDate: new(date(2025, 1, 1))}, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, j.List(ctx, tt.filter), tt.wantLen)
		})
	}
}

func TestJournal_Update(t *testing.T) {
	ctx := context.Background()
	j := journal.New()

	r, err := j.Create(ctx, salary())
	require.NoError(t, err)

	got, err := j.Update(ctx, r.ID, journal.Patch{Amount: new(int64(60000)), Status: new(journal.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(60000), got.Amount)
	assert.Equal(t, journal.StatusPending, got.Status)
	assert.Equal(t, "Salary Deposit", got.Description, "fields outside the patch are kept")
	assert.NotNil(t, got.UpdatedAt)

	_, err = j.Update(ctx, r.ID, journal.Patch{Description: new("")})
	assert.ErrorIs(t, err, journal.ErrInvalidRecord)

	stored, err := j.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salary Deposit", stored.Description, "rejected patch leaves the record intact")

	_, err = j.Update(ctx, 99, journal.Patch{Amount: new(int64(1))})
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestJournal_Delete(t *testing.T) {
	ctx := context.Background()
	j := journal.New()

	r, err := j.Create(ctx, salary())
	require.NoError(t, err)

	require.NoError(t, j.Delete(ctx, r.ID))
	assert.Zero(t, j.Len())

	assert.ErrorIs(t, j.Delete(ctx, r.ID), journal.ErrNotFound)

	_, err = j.Get(ctx, r.ID)
	assert.ErrorIs(t, err, journal.ErrNotFound)
}
