package ledger

import (
	"time"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

// DemoSeed is the journal a demo session starts with.
func DemoSeed() []journal.CreateParams {
	return []journal.CreateParams{
		{
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Description: "Salary Deposit",
			AccountID:   account.IDSavings,
			Amount:      50000 * 100,
			Status:      journal.StatusCompleted,
		},
		{
			Date:        time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			Description: "Utility Bill Payment",
			AccountID:   account.IDChecking,
			Amount:      -2500 * 100,
			Status:      journal.StatusCompleted,
		},
	}
}
