package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/response"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/money"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/total", h.total)
	r.Get("/{id}", h.get)
}

type Response struct {
	ID        account.ID `json:"id"`
	Number    string     `json:"number"`
	Label     string     `json:"label"`
	Balance   int64      `json:"balance"`
	Formatted string     `json:"formatted"`
}

type totalResponse struct {
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

func ToResponse(a account.Account) Response {
	return Response{
		ID:        a.ID,
		Number:    a.Number,
		Label:     a.Label,
		Balance:   a.Balance,
		Formatted: money.Format(a.Balance),
	}
}

func ToResponseList(accounts []account.Account) []Response {
	resp := make([]Response, len(accounts))
	for i, a := range accounts {
		resp[i] = ToResponse(a)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.Accounts(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ToResponseList(accounts))
}

func (h *Handler) total(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.TotalBalance(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, totalResponse{Total: total, Formatted: money.Format(total)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Account(r.Context(), account.ID(chi.URLParam(r, "id")))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ToResponse(a))
}
