package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateDelete
	listStateTimeframe
	// listStateSaving waits for the result of a submitted edit or delete.
	listStateSaving
)

var statusFilters = []*journal.Status{nil, new(journal.StatusPending), new(journal.StatusCompleted)}

type ListModel struct {
	CommonModel

	state   listState
	table   table.Model
	entries []ledger.Entry
	form    *huh.Form
	picker  TimeframePicker

	statusFilterIdx  int
	accountFilterIdx int
	accounts         []account.Account
	dateLabel        string

	filter journal.ListFilter
	status string

	// Form bindings live behind a pointer so they survive model copies.
	values *editValues
}

type editValues struct {
	desc    string
	amount  string
	status  journal.Status
	confirm bool
}

func NewListModel(common CommonModel) ListModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Account", Width: 18},
		{Title: "Status", Width: 10},
		{Title: "Amount", Width: 16},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	ctx, cancel := LedgerCtx()
	defer cancel()

	// A closed ledger leaves the account filter empty; loadCmd reports the error.
	accounts, _ := common.Ledger.Accounts(ctx)

	return ListModel{
		CommonModel: common,
		table:       t,
		picker:      NewTimeframePicker(),
		accounts:    accounts,
		dateLabel:   TimeframeAll.String(),
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit, listStateDelete:
		return "Navigate form | Esc: cancel"
	case listStateTimeframe:
		return "Enter: select | Esc: cancel"
	case listStateSaving:
		return "Saving..."
	}

	return "Esc: back | e: edit | x: delete | s: status | a: account | d: dates | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		msg.Apply(&m.filter)
		m.dateLabel = msg.Label
		m.state = listStateBrowse
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit, listStateDelete:
		return m.updateForm(msg)
	case listStateTimeframe:
		return m.updateTimeframe(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m.enterDeleteMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]

			return m, m.loadCmd()
		case "a":
			m.accountFilterIdx = (m.accountFilterIdx + 1) % (len(m.accounts) + 1)
			m.filter.AccountID = nil

			if m.accountFilterIdx > 0 {
				m.filter.AccountID = new(m.accounts[m.accountFilterIdx-1].ID)
			}

			return m, m.loadCmd()
		case "d":
			m.picker.Reset()
			m.state = listStateTimeframe
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) selected() (ledger.Entry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return ledger.Entry{}, false
	}

	return m.entries[idx], true
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.values = &editValues{desc: e.Description, amount: money.Format(e.Amount), status: e.Status}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.values.desc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Description("Negative for debits").
				Value(&m.values.amount).
				Validate(func(s string) error {
					_, err := money.Parse(s)
					return err
				}),

			huh.NewSelect[journal.Status]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", journal.StatusPending),
					huh.NewOption("Completed", journal.StatusCompleted),
				).
				Value(&m.values.status),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.values = &editValues{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete #%d %q?", e.ID, e.Description)).
				Description("Balances are not changed.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.values.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	cmd = m.saveCmd()
	if m.state == listStateDelete {
		cmd = m.deleteCmd()
	}

	m.state = listStateSaving

	return m, cmd
}

func (m ListModel) View() string {
	statusLabel := "All"
	if s := statusFilters[m.statusFilterIdx]; s != nil {
		statusLabel = string(*s)
	}

	accountLabel := "All"
	if m.accountFilterIdx > 0 {
		accountLabel = m.accounts[m.accountFilterIdx-1].Label
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [a] Account: %s | [d] Date: %s",
		activeStyle(statusLabel),
		activeStyle(accountLabel),
		activeStyle(m.dateLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	var panel string

	switch {
	case m.state == listStateTimeframe:
		panel = m.picker.View()
	case m.form != nil && (m.state == listStateEdit || m.state == listStateDelete):
		title := "Edit Transaction"
		if m.state == listStateDelete {
			title = "Delete Transaction"
		}

		panel = fmt.Sprintf("%s\n\n%s", title, m.form.View())
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(panel))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.ID),
			FormatDate(e.Date),
			e.AccountLabel,
			string(e.Status),
			m.Amount(e.Amount),
			e.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type loadListMsg struct {
	entries []ledger.Entry
	err     error
}

func (m ListModel) loadCmd() tea.Cmd {
	svc, filter := m.Ledger, m.filter

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		entries, err := svc.Entries(ctx, filter)

		return loadListMsg{entries: entries, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}

	amount, err := money.Parse(m.values.amount)
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	patch := journal.Patch{
		Description: new(m.values.desc),
		Amount:      new(amount),
		Status:      new(m.values.status),
	}
	svc := m.Ledger

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		if _, err := svc.UpdateTransaction(ctx, e.ID, patch); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Updated #%d.", e.ID)}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	e, ok := m.selected()
	if !ok || !m.values.confirm {
		return func() tea.Msg { return listSaveMsg{} }
	}

	svc := m.Ledger

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		if err := svc.DeleteTransaction(ctx, e.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted #%d.", e.ID)}
	}
}
