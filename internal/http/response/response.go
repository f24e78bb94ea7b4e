package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status code of its domain kind.
// Anything unrecognised is logged and reported as an internal error.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidTransfer),
		errors.Is(err, journal.ErrInvalidRecord),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, importer.ErrUnknownFormat),
		errors.Is(err, importer.ErrInvalidRow):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrUnknownAccount),
		errors.Is(err, journal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, account.ErrBalanceOverflow):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrSessionClosed):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}
