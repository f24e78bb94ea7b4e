package importer

import "github.com/MrJamesThe3rd/pocketbank/internal/money"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV format.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	DateLayout string
	DescCol    string
	AccountCol string // optional; rows fall back to the caller's account
	StatusCol  string // optional; rows default to completed
	// AllRows keeps zero amounts and rejects blank ones. Bank exports use
	// empty or zero amounts for filler lines; the journal format does not.
	AllRows    bool
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
	parseMoney func(string) (int64, error)
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	if p.AccountCol != "" {
		cols = append(cols, p.AccountCol)
	}

	if p.StatusCol != "" {
		cols = append(cols, p.StatusCol)
	}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "journal",
		DateCol:    "Date",
		DateLayout: "2006-01-02",
		DescCol:    "Description",
		AccountCol: "Account",
		StatusCol:  "Status",
		AllRows:    true,
		AmountMode: amountSingle,
		AmountCol:  "Amount",
		parseMoney: money.Parse,
	},
	{
		Name:       "statement",
		DateCol:    "Date",
		DateLayout: "02/01/2006",
		DescCol:    "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
		parseMoney: money.Parse,
	},
	{
		Name:       "cgd",
		DateCol:    "Data mov.",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Montante",
		parseMoney: money.ParseEuropean,
	},
}
