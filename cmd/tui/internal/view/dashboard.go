package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

// DashboardModel shows balances and the most recent journal entries.
type DashboardModel struct {
	CommonModel

	data   ledger.Dashboard
	err    error
	cursor int
}

func NewDashboardModel(common CommonModel) DashboardModel {
	return DashboardModel{CommonModel: common}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "↑/↓: select account | t: transfer from account | r: refresh | Esc: back"
}

type dashboardMsg struct {
	data ledger.Dashboard
	err  error
}

func (m DashboardModel) Init() tea.Cmd {
	svc := m.Ledger

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		d, err := svc.Dashboard(ctx)

		return dashboardMsg{data: d, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.data = msg.data
		m.err = msg.err
		m.cursor = min(m.cursor, max(len(m.data.Accounts)-1, 0))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.Init()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.data.Accounts)-1 {
				m.cursor++
			}
		case "t":
			if len(m.data.Accounts) == 0 {
				return m, nil
			}

			from := m.data.Accounts[m.cursor].ID

			return m, func() tea.Msg { return OpenTransferMsg{From: from} }
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	b.WriteString(titleStyle.Render("Total Balance") + "\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Amount(m.data.Total)) + "\n\n")

	b.WriteString(titleStyle.Render("Accounts") + "\n")

	for i, a := range m.data.Accounts {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %-20s %-10s %18s\n", cursor, a.Label, faintStyle.Render(a.Number), m.Amount(a.Balance))
	}

	b.WriteString("\n" + titleStyle.Render("Recent Transactions") + "\n")

	if len(m.data.Recent) == 0 {
		b.WriteString(faintStyle.Render("No transactions yet.") + "\n")
	}

	for _, e := range m.data.Recent {
		style := debitStyle
		if e.Amount > 0 {
			style = creditStyle
		}

		fmt.Fprintf(&b, "%s  %-18s %-32s %s %s\n",
			FormatDate(e.Date),
			e.AccountLabel,
			e.Description,
			style.Render(fmt.Sprintf("%18s", m.Amount(e.Amount))),
			faintStyle.Render(string(e.Status)),
		)
	}

	b.WriteString("\n" + faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
