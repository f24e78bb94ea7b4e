package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/response"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parser *importer.Parser
	svc    *ledger.Service
}

func NewHandler(parser *importer.Parser, svc *ledger.Service) *Handler {
	return &Handler{parser: parser, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID          int64          `json:"id"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	AccountID   account.ID     `json:"account"`
	Amount      int64          `json:"amount"`
	Status      journal.Status `json:"status"`
}

type importResponse struct {
	Format       string                `json:"format"`
	Charset      string                `json:"charset"`
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

// importCSV posts every row of the uploaded statement, or none of them.
// Rows of formats without an account column go to the "account" form field.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.parser.Parse(file, account.ID(r.FormValue("account")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.svc.CreateBatch(r.Context(), result.Records)
	if err != nil {
		response.Error(w, err)
		return
	}

	resp := importResponse{
		Format:       result.Profile,
		Charset:      string(result.Charset),
		Imported:     len(records),
		Transactions: make([]transactionResponse, len(records)),
	}

	for i, rec := range records {
		resp.Transactions[i] = transactionResponse{
			ID:          rec.ID,
			Date:        rec.Date.Format(time.DateOnly),
			Description: rec.Description,
			AccountID:   rec.AccountID,
			Amount:      rec.Amount,
			Status:      rec.Status,
		}
	}

	response.JSON(w, http.StatusCreated, resp)
}
