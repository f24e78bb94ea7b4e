package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
)

type importState int

const (
	importStateAccountSelect importState = iota
	importStateFilePick
	importStateResult
)

// ImportModel posts a statement file to the journal. Rows of formats without
// an account column go to the account picked first.
type ImportModel struct {
	CommonModel
	parser *importer.Parser

	state         importState
	filePicker    filepicker.Model
	accounts      []account.Account
	accountCursor int

	status string
	err    error
}

func NewImportModel(common CommonModel, parser *importer.Parser) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	ctx, cancel := LedgerCtx()
	defer cancel()

	accounts, err := common.Ledger.Accounts(ctx)

	m := ImportModel{
		CommonModel: common,
		parser:      parser,
		filePicker:  fp,
		accounts:    accounts,
	}

	if err != nil {
		m.state = importStateResult
		m.err = err
		m.status = fmt.Sprintf("Error: %v", err)
	}

	return m
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateAccountSelect {
			return m.updateAccountSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions (%s format, %s).", msg.count, msg.profile, msg.charset)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.status = fmt.Sprintf("Importing from %s...", path)
		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateAccountSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateAccountSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.accountCursor > 0 {
			m.accountCursor--
		}
	case tea.KeyDown:
		if m.accountCursor < len(m.accounts)-1 {
			m.accountCursor++
		}
	case tea.KeyEnter:
		if len(m.accounts) == 0 {
			return m, nil
		}

		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateAccountSelect:
		return m.viewAccountSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select statement for %s:\n\n%s\n%s",
				m.accounts[m.accountCursor].Label, m.filePicker.View(), faintStyle.Render(m.status)),
		)
	case importStateResult:
		style := creditStyle
		if m.err != nil {
			style = errorStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewAccountSelect() string {
	s := "Post rows without an account to:\n\n"

	for i, a := range m.accounts {
		cursor := " "
		if i == m.accountCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, a.Label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// Messages

type importResultMsg struct {
	count   int
	profile string
	charset string
	err     error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	svc, parser, fallback := m.Ledger, m.parser, m.accounts[m.accountCursor].ID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		result, err := parser.Parse(f, fallback)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := LedgerCtx()
		defer cancel()

		records, err := svc.CreateBatch(ctx, result.Records)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(records), profile: result.Profile, charset: string(result.Charset)}
	}
}
