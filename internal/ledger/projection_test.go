package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSortForDisplay(t *testing.T) {
	records := []*journal.Record{
		{ID: 1, Date: day(14)},
		{ID: 2, Date: day(15)},
		{ID: 3, Date: day(14)},
		{ID: 4, Date: day(16)},
		{ID: 5, Date: day(15)},
	}

	got := ledger.SortForDisplay(records)

	ids := make([]int64, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}

	assert.Equal(t, []int64{4, 2, 5, 1, 3}, ids, "newest first, ties keep insertion order")
	assert.Equal(t, int64(1), records[0].ID, "input is left untouched")
}

func TestService_Entries_DemoOrder(t *testing.T) {
	svc := newLedger(t, ledger.DemoSeed()...)

	entries, err := svc.Entries(context.Background(), journal.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, day(15), entries[0].Date)
	assert.Equal(t, "Savings Account", entries[0].AccountLabel)
	assert.Equal(t, day(14), entries[1].Date)
	assert.Equal(t, "Checking Account", entries[1].AccountLabel)
}

func TestService_Recent(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t)

	for d := 1; d <= 8; d++ {
		_, err := svc.CreateTransaction(ctx, journal.CreateParams{
			Date:        day(d),
			Description: "Coffee",
			AccountID:   account.IDChecking,
			Amount:      -300,
		})
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx, ledger.DashboardRecent)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, day(8), recent[0].Date)
	assert.Equal(t, day(4), recent[4].Date)

	all, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 8, "a zero limit returns everything")
}

func TestService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t, ledger.DemoSeed()...)

	_, err := svc.Transfer(ctx, ledger.TransferRequest{From: account.IDChecking, To: account.IDSavings, Amount: 2_500})
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), d.Total)
	require.Len(t, d.Accounts, 2)
	require.Len(t, d.Recent, 4)

	assert.Equal(t, "Transfer to Savings Account", d.Recent[0].Description)
	assert.Equal(t, "Checking Account", d.Recent[0].AccountLabel)
	assert.Equal(t, "Transfer from Checking Account", d.Recent[1].Description)
	assert.Equal(t, "Savings Account", d.Recent[1].AccountLabel)
	assert.Equal(t, "Salary Deposit", d.Recent[2].Description)
}

func TestService_Entries_LabelsResolvedAtReadTime(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t, ledger.DemoSeed()...)

	_, err := svc.UpdateTransaction(ctx, 1, journal.Patch{AccountID: new(account.IDChecking)})
	require.NoError(t, err)

	entries, err := svc.Entries(ctx, journal.ListFilter{AccountID: new(account.IDChecking)})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, "Checking Account", e.AccountLabel)
	}
}

func TestService_Labeled_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t, ledger.DemoSeed()...)

	_, err := svc.Transfer(ctx, ledger.TransferRequest{From: account.IDSavings, To: account.IDChecking, Amount: 100})
	require.NoError(t, err)

	entries, err := svc.Labeled(ctx, journal.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.ID)
	}

	assert.Equal(t, "Savings Account", entries[0].AccountLabel)
	assert.Equal(t, "Checking Account", entries[1].AccountLabel)
}
