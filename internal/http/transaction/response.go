package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

type transactionResponse struct {
	ID           int64          `json:"id"`
	Date         string         `json:"date"`
	Description  string         `json:"description"`
	AccountID    account.ID     `json:"account"`
	AccountLabel string         `json:"account_label,omitempty"`
	Amount       int64          `json:"amount"`
	Status       journal.Status `json:"status"`
	TransferID   *uuid.UUID     `json:"transfer_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func toResponse(r *journal.Record) transactionResponse {
	return transactionResponse{
		ID:          r.ID,
		Date:        r.Date.Format(time.DateOnly),
		Description: r.Description,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Status:      r.Status,
		TransferID:  r.TransferID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toEntryResponse(e ledger.Entry) transactionResponse {
	resp := toResponse(e.Record)
	resp.AccountLabel = e.AccountLabel

	return resp
}

func toResponseList(entries []ledger.Entry) []transactionResponse {
	resp := make([]transactionResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}
