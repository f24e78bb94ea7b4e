package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/request"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/response"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Date        request.Date   `json:"date"`
	Description string         `json:"description"`
	AccountID   account.ID     `json:"account"`
	Amount      request.Amount `json:"amount"`
	Status      journal.Status `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.CreateTransaction(r.Context(), journal.CreateParams{
		Date:        req.Date.Time(),
		Description: req.Description,
		AccountID:   req.AccountID,
		Amount:      int64(req.Amount),
		Status:      req.Status,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(rec))
}

// list returns the journal in insertion order, or newest first with
// order=display. limit applies to display order only.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := request.Filter(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch q.Get("order") {
	case "", "insertion":
		entries, err := h.svc.Labeled(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, toResponseList(entries))
	case "display":
		entries, err := h.svc.Entries(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		if s := q.Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}

			if n > 0 && n < len(entries) {
				entries = entries[:n]
			}
		}

		response.JSON(w, http.StatusOK, toResponseList(entries))
	default:
		http.Error(w, "order must be insertion or display", http.StatusBadRequest)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Transaction(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(rec))
}

type updateTransactionRequest struct {
	Date        *request.Date   `json:"date,omitempty"`
	Description *string         `json:"description,omitempty"`
	AccountID   *account.ID     `json:"account,omitempty"`
	Amount      *request.Amount `json:"amount,omitempty"`
	Status      *journal.Status `json:"status,omitempty"`
}

func (req updateTransactionRequest) patch() journal.Patch {
	p := journal.Patch{
		Description: req.Description,
		AccountID:   req.AccountID,
		Status:      req.Status,
	}

	if req.Date != nil {
		p.Date = new(req.Date.Time())
	}

	if req.Amount != nil {
		p.Amount = new(int64(*req.Amount))
	}

	return p
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.UpdateTransaction(r.Context(), id, req.patch())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}
