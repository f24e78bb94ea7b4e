package view

import (
	"time"

	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

// FormatAmount renders minor units with a currency symbol, e.g. "-₹2,500.00".
func FormatAmount(currency string, minor int64) string {
	if minor < 0 {
		return "-" + currency + money.Format(-minor)
	}

	return currency + money.Format(minor)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
