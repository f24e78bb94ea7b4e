package export_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/export"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()

	session, err := ledger.NewSession(context.Background(), []account.Config{
		{ID: account.IDSavings, Label: "Savings Account", InitialBalance: 1_500_000},
		{ID: account.IDChecking, Label: "Checking Account", InitialBalance: 1_000_000},
	}, ledger.DemoSeed(),
		ledger.WithClock(func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }),
		ledger.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)

	svc, err := session.Ledger()
	require.NoError(t, err)

	return svc
}

func TestService_WriteCSV(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t)

	var buf bytes.Buffer

	n, err := export.NewService(svc).WriteCSV(ctx, &buf, journal.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want := "ID;Date;Description;Account;Amount;Status\n" +
		"1;2024-03-15;Salary Deposit;savings;50,000.00;completed\n" +
		"2;2024-03-14;Utility Bill Payment;checking;-2,500.00;completed\n"
	assert.Equal(t, want, buf.String())
}

func TestService_WriteCSV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(t)

	_, err := svc.Transfer(ctx, ledger.TransferRequest{From: account.IDSavings, To: account.IDChecking, Amount: 12_345})
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, journal.CreateParams{
		Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Description: "Fee Waiver",
		AccountID:   account.IDChecking,
		Status:      journal.StatusPending,
	})
	require.NoError(t, err)

	var buf bytes.Buffer

	_, err = export.NewService(svc).WriteCSV(ctx, &buf, journal.ListFilter{})
	require.NoError(t, err)

	got, err := importer.NewParser().Parse(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, "journal", got.Profile)

	entries, err := svc.Entries(ctx, journal.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got.Records, len(entries))

	for i, e := range entries {
		assert.Equal(t, e.Date, got.Records[i].Date)
		assert.Equal(t, e.Description, got.Records[i].Description)
		assert.Equal(t, e.AccountID, got.Records[i].AccountID)
		assert.Equal(t, e.Amount, got.Records[i].Amount)
		assert.Equal(t, e.Status, got.Records[i].Status)
	}
}

func TestService_Summary(t *testing.T) {
	svc := newLedger(t)

	got, err := export.NewService(svc).Summary(context.Background(), journal.ListFilter{}, "₹")
	require.NoError(t, err)

	want := "* 2024-03-15 | Salary Deposit | Savings Account | +₹50,000.00 | completed\n" +
		"* 2024-03-14 | Utility Bill Payment | Checking Account | -₹2,500.00 | completed\n"
	assert.Equal(t, want, got)
}
