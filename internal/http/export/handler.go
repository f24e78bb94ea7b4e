package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbank/internal/export"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/request"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/response"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
)

type Handler struct {
	svc      *export.Service
	currency string
	now      func() time.Time
}

func NewHandler(svc *export.Service, currency string) *Handler {
	return &Handler{svc: svc, currency: currency, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.csv)
	r.Get("/summary", h.summary)
	r.Get("/download", h.download)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	filter, err := request.Filter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if _, err := h.svc.WriteCSV(r.Context(), &buf, filter); err != nil {
		response.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"journal_%s.csv\"", h.now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := request.Filter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summary(r.Context(), filter, h.currency)
	if err != nil {
		response.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := io.WriteString(w, summary); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// download bundles the CSV and the plain-text summary in one zip archive.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := request.Filter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.writeArchive(r.Context(), &buf, filter); err != nil {
		response.Error(w, fmt.Errorf("creating zip: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"export_%s.zip\"", h.now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeArchive(ctx context.Context, w io.Writer, filter journal.ListFilter) error {
	zw := zip.NewWriter(w)

	csvFile, err := zw.Create("journal.csv")
	if err != nil {
		return err
	}

	if _, err := h.svc.WriteCSV(ctx, csvFile, filter); err != nil {
		return err
	}

	summaryFile, err := zw.Create("summary.txt")
	if err != nil {
		return err
	}

	summary, err := h.svc.Summary(ctx, filter, h.currency)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(summaryFile, summary); err != nil {
		return err
	}

	return zw.Close()
}
