package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbank/internal/http/account"
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
	r.Get("/", h.get)
}

type recentResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Account     string `json:"account"`
	Amount      int64  `json:"amount"`
	Formatted   string `json:"formatted"`
	Status      string `json:"status"`
}

type dashboardResponse struct {
	Total     int64              `json:"total"`
	Formatted string             `json:"formatted"`
	Accounts  []account.Response `json:"accounts"`
	Recent    []recentResponse   `json:"recent"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	resp := dashboardResponse{
		Total:     d.Total,
		Formatted: money.Format(d.Total),
		Accounts:  account.ToResponseList(d.Accounts),
		Recent:    make([]recentResponse, len(d.Recent)),
	}

	for i, e := range d.Recent {
		resp.Recent[i] = recentResponse{
			ID:          e.ID,
			Date:        e.Date.Format(time.DateOnly),
			Description: e.Description,
			Account:     e.AccountLabel,
			Amount:      e.Amount,
			Formatted:   money.FormatSigned(e.Amount),
			Status:      string(e.Status),
		}
	}

	response.JSON(w, http.StatusOK, resp)
}
