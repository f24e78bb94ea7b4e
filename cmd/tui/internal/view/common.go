package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

const opTimeout = 5 * time.Second

// View is implemented by every screen.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Ledger   *ledger.Service
	Currency string
}

func NewCommon(svc *ledger.Service, currency string) CommonModel {
	return CommonModel{Ledger: svc, Currency: currency}
}

// Amount renders minor units with the configured currency symbol.
func (c CommonModel) Amount(minor int64) string {
	return FormatAmount(c.Currency, minor)
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenTransferMsg asks the root model to show the transfer form with From preselected.
type OpenTransferMsg struct {
	From account.ID
}

// LedgerCtx returns a context bounded by the standard operation timeout.
func LedgerCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	debitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
