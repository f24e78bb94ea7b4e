package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

// Amount decodes a major-unit amount given as a JSON string ("2500.00") or
// number (2500) into minor units.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))

	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	v, err := money.Parse(raw)
	if err != nil {
		return err
	}

	*a = Amount(v)

	return nil
}

// Date decodes "2006-01-02" or an RFC 3339 timestamp. A timestamp keeps the
// calendar date of its own offset, so "2024-03-15T23:00:00-05:00" is March 15.
type Date time.Time

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

// ParseDate parses an optional "2006-01-02" query value.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", s)
	}

	return &t, nil
}

// Filter reads the status, account, start_date and end_date query values.
func Filter(q url.Values) (journal.ListFilter, error) {
	filter := journal.ListFilter{}

	if s := q.Get("status"); s != "" {
		filter.Status = new(journal.Status(s))
	}

	if s := q.Get("account"); s != "" {
		filter.AccountID = new(account.ID(s))
	}

	start, err := ParseDate(q.Get("start_date"))
	if err != nil {
		return filter, err
	}

	end, err := ParseDate(q.Get("end_date"))
	if err != nil {
		return filter, err
	}

	filter.StartDate, filter.EndDate = start, end

	return filter, nil
}
