package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocketbank/cmd/tui/internal/view"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹15,000.00", view.FormatAmount("₹", 1_500_000))
	assert.Equal(t, "-₹2,500.00", view.FormatAmount("₹", -250_000))
	assert.Equal(t, "$0.01", view.FormatAmount("$", 1))
	assert.Equal(t, "0.00", view.FormatAmount("", 0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-15", view.FormatDate(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)))
}
