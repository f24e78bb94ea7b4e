package account

import "errors"

// ID identifies an account within a session.
type ID string

const (
	IDSavings  ID = "savings"
	IDChecking ID = "checking"
)

var (
	ErrUnknownAccount  = errors.New("unknown account")
	ErrBalanceOverflow = errors.New("balance out of range")
)

// Account represents a balance-holding account belonging to the session's user.
type Account struct {
	ID      ID
	Number  string
	Label   string
	Balance int64 // Balance in minor units
}

// Config describes an account as supplied once at startup.
type Config struct {
	ID             ID
	Number         string
	Label          string
	InitialBalance int64
}
