package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocketbank/internal/http/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/dashboard"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/export"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/transfer"
)

type Handlers struct {
	Accounts     *account.Handler
	Dashboard    *dashboard.Handler
	Transfers    *transfer.Handler
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
}

func New(v1 Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", v1.Accounts.Routes)
		r.Route("/dashboard", v1.Dashboard.Routes)

		r.Route("/transfers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Transfers.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Transactions.Routes(r)
		})

		r.Route("/import", v1.Import.Routes)
		r.Route("/export", v1.Export.Routes)
	})

	return router
}
