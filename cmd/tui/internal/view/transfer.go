package view

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

type transferState int

const (
	transferStateForm transferState = iota
	transferStateSubmitting
	transferStateResult
)

type transferValues struct {
	from   account.ID
	to     account.ID
	amount string
}

// TransferModel moves funds between the user's accounts.
type TransferModel struct {
	CommonModel

	state    transferState
	form     *huh.Form
	values   *transferValues
	accounts []account.Account

	result *ledger.Transfer
	err    error
}

// NewTransferModel builds the form with from preselected; an empty from
// selects the first account.
func NewTransferModel(common CommonModel, from account.ID) TransferModel {
	ctx, cancel := LedgerCtx()
	defer cancel()

	accounts, err := common.Ledger.Accounts(ctx)

	m := TransferModel{
		CommonModel: common,
		accounts:    accounts,
		values:      &transferValues{from: from},
	}

	if err != nil {
		m.state = transferStateResult
		m.err = err
	}

	if m.values.from == "" && len(m.accounts) > 0 {
		m.values.from = m.accounts[0].ID
	}

	for _, a := range m.accounts {
		if a.ID != m.values.from {
			m.values.to = a.ID
			break
		}
	}

	m.form = m.newForm()

	return m
}

func (m TransferModel) newForm() *huh.Form {
	options := make([]huh.Option[account.ID], len(m.accounts))
	for i, a := range m.accounts {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", a.Label, m.Amount(a.Balance)), a.ID)
	}

	values := m.values

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[account.ID]().
				Key("from").
				Title("From").
				Options(options...).
				Value(&values.from),

			huh.NewSelect[account.ID]().
				Key("to").
				Title("To").
				Options(options...).
				Value(&values.to).
				Validate(func(to account.ID) error {
					if to == values.from {
						return errors.New("choose a different account")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("2500.00").
				Value(&values.amount).
				Validate(func(s string) error {
					v, err := money.Parse(s)
					if err != nil {
						return err
					}

					if v <= 0 {
						return errors.New("amount must be positive")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m TransferModel) Title() string { return "Transfer" }

func (m TransferModel) ShortHelp() string {
	switch m.state {
	case transferStateSubmitting:
		return "Transferring..."
	case transferStateResult:
		return "n: new transfer | Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m TransferModel) Init() tea.Cmd {
	return m.form.Init()
}

type transferResultMsg struct {
	transfer *ledger.Transfer
	err      error
}

func (m TransferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transferResultMsg:
		m.state = transferStateResult
		m.result = msg.transfer
		m.err = msg.err

		ctx, cancel := LedgerCtx()
		defer cancel()

		if accounts, err := m.Ledger.Accounts(ctx); err == nil {
			m.accounts = accounts
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == transferStateResult {
			if msg.String() == "n" {
				next := NewTransferModel(m.CommonModel, m.values.from)
				return next, next.Init()
			}

			return m, nil
		}
	}

	if m.state != transferStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = transferStateSubmitting

	return m, m.transferCmd()
}

func (m TransferModel) transferCmd() tea.Cmd {
	svc, values := m.Ledger, *m.values

	return func() tea.Msg {
		amount, err := money.Parse(values.amount)
		if err != nil {
			return transferResultMsg{err: err}
		}

		ctx, cancel := LedgerCtx()
		defer cancel()

		t, err := svc.Transfer(ctx, ledger.TransferRequest{From: values.from, To: values.to, Amount: amount})

		return transferResultMsg{transfer: t, err: err}
	}
}

func (m TransferModel) View() string {
	content := titleStyle.Render("Transfer Funds") + "\n\n"

	switch m.state {
	case transferStateForm:
		content += m.form.View()
	case transferStateSubmitting:
		content += faintStyle.Render("Transferring...")
	case transferStateResult:
		content += m.resultView()
	}

	content += "\n\n" + faintStyle.Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m TransferModel) resultView() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Transfer failed: %s", transferErrorText(m.err)))
	}

	s := fmt.Sprintf("Transferred %s.\n\n", m.Amount(m.result.Credit.Amount))
	for _, a := range m.accounts {
		s += fmt.Sprintf("%-20s %18s\n", a.Label, m.Amount(a.Balance))
	}

	return s
}

func transferErrorText(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient funds"
	case errors.Is(err, ledger.ErrSameAccount):
		return "source and destination must differ"
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "amount must be positive"
	case errors.Is(err, account.ErrUnknownAccount):
		return "unknown account"
	case errors.Is(err, ledger.ErrSessionClosed):
		return "session closed"
	}

	return err.Error()
}
