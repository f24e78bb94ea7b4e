package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/export"
	apphttp "github.com/MrJamesThe3rd/pocketbank/internal/http"
	accounthttp "github.com/MrJamesThe3rd/pocketbank/internal/http/account"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/dashboard"
	exporthttp "github.com/MrJamesThe3rd/pocketbank/internal/http/export"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocketbank/internal/http/transfer"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/journal"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
)

const origin = "http://localhost:5173"

func newServer(t *testing.T) (*httptest.Server, *ledger.Service) {
	t.Helper()

	srv, session := newSessionServer(t)

	svc, err := session.Ledger()
	require.NoError(t, err)

	return srv, svc
}

func newSessionServer(t *testing.T) (*httptest.Server, *ledger.Session) {
	t.Helper()

	session, err := ledger.NewSession(context.Background(), []account.Config{
		{ID: account.IDSavings, Number: "SAV1234", Label: "Savings Account", InitialBalance: 1_500_000},
		{ID: account.IDChecking, Number: "CHK5678", Label: "Checking Account", InitialBalance: 1_000_000},
	}, ledger.DemoSeed(),
		ledger.WithClock(func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }),
		ledger.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)

	svc, err := session.Ledger()
	require.NoError(t, err)

	router := apphttp.New(apphttp.Handlers{
		Accounts:     accounthttp.NewHandler(svc),
		Dashboard:    dashboard.NewHandler(svc),
		Transfers:    transfer.NewHandler(svc),
		Transactions: transaction.NewHandler(svc),
		Import:       importcsv.NewHandler(importer.NewParser(), svc),
		Export:       exporthttp.NewHandler(export.NewService(svc), "$"),
	}, []string{origin})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, session
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAccounts(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/accounts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var accounts []map[string]any
	decode(t, resp, &accounts)
	require.Len(t, accounts, 2)
	assert.Equal(t, "savings", accounts[0]["id"])
	assert.Equal(t, "15,000.00", accounts[0]["formatted"])

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/accounts/total", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var total map[string]any
	decode(t, resp, &total)
	assert.InDelta(t, 2_500_000, total["total"], 0)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/accounts/brokerage", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "ok", body: `{"from":"savings","to":"checking","amount":"2500"}`, wantStatus: http.StatusCreated},
		{name: "insufficient funds", body: `{"from":"checking","to":"savings","amount":"10000.01"}`, wantStatus: http.StatusConflict},
		{name: "same account", body: `{"from":"savings","to":"savings","amount":"1"}`, wantStatus: http.StatusBadRequest},
		{name: "zero amount", body: `{"from":"savings","to":"checking","amount":"0"}`, wantStatus: http.StatusBadRequest},
		{name: "missing field", body: `{"to":"checking","amount":"1"}`, wantStatus: http.StatusBadRequest},
		{name: "bad amount", body: `{"from":"savings","to":"checking","amount":"lots"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown account", body: `{"from":"savings","to":"brokerage","amount":"1"}`, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newServer(t)

			resp := do(t, http.MethodPost, srv.URL+"/api/v1/transfers", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != http.StatusCreated {
				records, err := svc.Transactions(context.Background(), ledgerFilter())
				require.NoError(t, err)
				assert.Len(t, records, 2)

				total, err := svc.TotalBalance(context.Background())
				require.NoError(t, err)
				assert.Equal(t, int64(2_500_000), total)

				return
			}

			var got map[string]any
			decode(t, resp, &got)
			assert.InDelta(t, 1_250_000, got["from_balance"], 0)
			assert.InDelta(t, 1_250_000, got["to_balance"], 0)
			assert.InDelta(t, 2_500_000, got["total_balance"], 0)
		})
	}
}

func TestDashboard(t *testing.T) {
	srv, _ := newServer(t)

	do(t, http.MethodPost, srv.URL+"/api/v1/transfers", `{"from":"savings","to":"checking","amount":"25"}`)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Total  int64 `json:"total"`
		Recent []struct {
			Description string `json:"description"`
			Account     string `json:"account"`
		} `json:"recent"`
	}
	decode(t, resp, &got)

	assert.Equal(t, int64(2_500_000), got.Total)
	require.Len(t, got.Recent, 4)
	assert.Equal(t, "Transfer to Checking Account", got.Recent[0].Description)
	assert.Equal(t, "Savings Account", got.Recent[0].Account)
	assert.Equal(t, "Utility Bill Payment", got.Recent[3].Description)
}

func TestTransactions_CRUD(t *testing.T) {
	srv, _ := newServer(t)
	base := srv.URL + "/api/v1/transactions"

	resp := do(t, http.MethodPost, base,
		`{"date":"2024-03-16","description":"Coffee","account":"checking","amount":"-3.50","status":"pending"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	decode(t, resp, &created)
	assert.InDelta(t, 3, created["id"], 0)
	assert.InDelta(t, -350, created["amount"], 0)
	assert.Equal(t, "2024-03-16", created["date"])

	resp = do(t, http.MethodGet, base+"?status=pending", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Checking Account", list[0]["account_label"])

	resp = do(t, http.MethodPatch, base+"/3", `{"status":"completed","amount":"-4"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated map[string]any
	decode(t, resp, &updated)
	assert.Equal(t, "completed", updated["status"])
	assert.InDelta(t, -400, updated["amount"], 0)
	assert.Equal(t, "Coffee", updated["description"])

	resp = do(t, http.MethodGet, base+"?order=display&limit=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Coffee", list[0]["description"])

	resp = do(t, http.MethodDelete, base+"/3", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/3", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactions_Errors(t *testing.T) {
	srv, _ := newServer(t)
	base := srv.URL + "/api/v1/transactions"

	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		wantStatus int
	}{
		{name: "update missing", method: http.MethodPatch, url: base + "/99", body: `{"description":"x"}`, wantStatus: http.StatusNotFound},
		{name: "delete missing", method: http.MethodDelete, url: base + "/99", wantStatus: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, url: base + "/abc", wantStatus: http.StatusBadRequest},
		{name: "blank description", method: http.MethodPatch, url: base + "/1", body: `{"description":"  "}`, wantStatus: http.StatusBadRequest},
		{name: "bad status", method: http.MethodPatch, url: base + "/1", body: `{"status":"void"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown account", method: http.MethodPatch, url: base + "/1", body: `{"account":"brokerage"}`, wantStatus: http.StatusNotFound},
		{name: "bad filter date", method: http.MethodGet, url: base + "?start_date=soon", wantStatus: http.StatusBadRequest},
		{name: "bad order", method: http.MethodGet, url: base + "?order=random", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestImport(t *testing.T) {
	srv, svc := newServer(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("account", "checking"))

	fw, err := mw.CreateFormFile("file", "statement.csv")
	require.NoError(t, err)

	_, err = io.WriteString(fw, "Date;Description;Debit;Credit\n18/03/2024;Groceries;42.10;\n19/03/2024;Refund;;5.00\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/import", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got struct {
		Format   string `json:"format"`
		Imported int    `json:"imported"`
	}
	decode(t, resp, &got)
	assert.Equal(t, "statement", got.Format)
	assert.Equal(t, 2, got.Imported)
	records, err := svc.Transactions(context.Background(), ledgerFilter())
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestExport(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/export?account=checking", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "journal_")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ID;Date;Description;Account;Amount;Status\n"+
		"2;2024-03-14;Utility Bill Payment;checking;-2,500.00;completed\n", string(b))

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/export/download", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
}

func TestClosedSession(t *testing.T) {
	srv, session := newSessionServer(t)
	session.Close()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/api/v1/accounts"},
		{method: http.MethodGet, path: "/api/v1/accounts/total"},
		{method: http.MethodGet, path: "/api/v1/dashboard"},
		{method: http.MethodPost, path: "/api/v1/transfers", body: `{"from":"checking","to":"savings","amount":"25.00"}`},
		{method: http.MethodGet, path: "/api/v1/transactions"},
		{method: http.MethodGet, path: "/api/v1/transactions?order=display"},
		{method: http.MethodDelete, path: "/api/v1/transactions/1"},
		{method: http.MethodGet, path: "/api/v1/export"},
		{method: http.MethodGet, path: "/api/v1/export/summary"},
		{method: http.MethodGet, path: "/api/v1/export/download"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		})
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/transfers", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))
}

func ledgerFilter() journal.ListFilter {
	return journal.ListFilter{}
}
