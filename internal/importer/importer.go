package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	enc "github.com/MrJamesThe3rd/pocketbank/internal/encoding"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

var (
	ErrUnknownFormat = errors.New("no matching statement format")
	ErrInvalidRow    = errors.New("invalid row")
)

// Result is what one statement file produced.
type Result struct {
	Profile string
	Charset enc.Charset
	Records []journal.CreateParams
}

// Parser reads semicolon-separated statement exports and produces journal
// records. It auto-detects the format by matching column headers against
// known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads r. Rows without an account column are posted against
// fallback; if the format has no account column and fallback is empty, Parse fails.
func (p *Parser) Parse(r io.Reader, fallback account.ID) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	if profile.AccountCol == "" && fallback == "" {
		return nil, fmt.Errorf("%s format has no account column: an account is required", profile.Name)
	}

	records, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx, fallback)
	if err != nil {
		return nil, err
	}

	return &Result{Profile: profile.Name, Charset: charset, Records: records}, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts records from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int, fallback account.ID) ([]journal.CreateParams, error) {
	var out []journal.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, cols[p.DateCol], p.DateLayout)
		if !ok {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: %w: missing description", rowNum, ErrInvalidRow)
		}

		amount, ok, err := parseAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %w", rowNum, ErrInvalidRow, err)
		}

		if !ok {
			continue
		}

		acct := fallback
		if p.AccountCol != "" {
			if v := cellValue(row, cols[p.AccountCol]); v != "" {
				acct = account.ID(v)
			}
		}

		if acct == "" {
			return nil, fmt.Errorf("row %d: %w: missing account", rowNum, ErrInvalidRow)
		}

		status := journal.StatusCompleted
		if p.StatusCol != "" {
			if v := journal.Status(strings.ToLower(cellValue(row, cols[p.StatusCol]))); v != "" {
				if !v.Valid() {
					return nil, fmt.Errorf("row %d: %w: unknown status %q", rowNum, ErrInvalidRow, v)
				}

				status = v
			}
		}

		out = append(out, journal.CreateParams{
			Date:        date,
			Description: desc,
			AccountID:   acct,
			Amount:      amount,
			Status:      status,
		})
	}

	return out, nil
}

// parseDate returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int, layout string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseAmount returns a signed amount: debits negative, credits positive.
// It returns false for rows that carry no amount, and an error for a
// value that is present but malformed.
func parseAmount(p *Profile, cols colIndex, row []string) (int64, bool, error) {
	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols[p.AmountCol])
		if s == "" {
			if p.AllRows {
				return 0, false, errors.New("missing amount")
			}

			return 0, false, nil
		}

		v, err := p.parseMoney(s)
		if err != nil {
			return 0, false, err
		}

		return v, v != 0 || p.AllRows, nil
	case amountSplit:
		debit, err := parseCell(p, row, cols[p.DebitCol])
		if err != nil {
			return 0, false, err
		}

		if debit != 0 {
			return -abs(debit), true, nil
		}

		credit, err := parseCell(p, row, cols[p.CreditCol])
		if err != nil {
			return 0, false, err
		}

		if credit != 0 {
			return abs(credit), true, nil
		}
	}

	return 0, false, nil
}

// parseCell reads an optional money cell; blank is zero.
func parseCell(p *Profile, row []string, idx int) (int64, error) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, nil
	}

	return p.parseMoney(s)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
