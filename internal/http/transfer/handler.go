package transfer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/request"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/response"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.transfer)
}

type transferRequest struct {
	From   account.ID     `json:"from"`
	To     account.ID     `json:"to"`
	Amount request.Amount `json:"amount"`
}

type transferResponse struct {
	ID           uuid.UUID `json:"id"`
	DebitID      int64     `json:"debit_id"`
	CreditID     int64     `json:"credit_id"`
	Amount       int64     `json:"amount"`
	FromBalance  int64     `json:"from_balance"`
	ToBalance    int64     `json:"to_balance"`
	TotalBalance int64     `json:"total_balance"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Transfer(r.Context(), ledger.TransferRequest{
		From:   req.From,
		To:     req.To,
		Amount: int64(req.Amount),
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	resp := transferResponse{
		ID:       t.ID,
		DebitID:  t.Debit.ID,
		CreditID: t.Credit.ID,
		Amount:   t.Credit.Amount,
	}

	// Balances may already reflect later transfers; they are informational.
	resp.TotalBalance, _ = h.svc.TotalBalance(r.Context())
	resp.FromBalance, _ = h.svc.Balance(r.Context(), req.From)
	resp.ToBalance, _ = h.svc.Balance(r.Context(), req.To)

	response.JSON(w, http.StatusCreated, resp)
}
