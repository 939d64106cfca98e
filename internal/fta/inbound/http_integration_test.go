package inbound

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/analyzer"
	"github.com/shandysiswandi/gofta/internal/fta/fraud"
	"github.com/shandysiswandi/gofta/internal/fta/generator"
	"github.com/shandysiswandi/gofta/internal/fta/store"
	"github.com/shandysiswandi/gofta/internal/fta/usecase"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofta/internal/pkg/pkguid"
)

type envelope[T any] struct {
	Message string         `json:"message"`
	Data    T              `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

const statement = "BANCO DO BRASIL,0001,00001-1,BANCO BRADESCO,0002,00002-2,150000.00,2022-01-01T10:00:00\n" +
	"BANCO DO BRASIL,0001,00001-1,BANCO BRADESCO,0002,00002-2,150000.00,2022-01-01T10:00:00\n" +
	"BANCO SANTANDER,0003,00003-3,NUBANK,0004,00004-4,120.50,2022-01-01T23:59:59\n" +
	"BANCO SANTANDER,0003,00003-3,NUBANK,0004,00004-4,99.90,2022-01-02T08:00:00\n"

func newTestRouter(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()

	uc := usecase.New(usecase.Dependency{
		Store:    store.NewInMemoryStore(),
		Analyzer: analyzer.New(),
		Detector: fraud.NewDetector(fraud.DefaultThresholds()),
		Generator: generator.New(generator.Config{
			Size: 5,
			Seed: 7,
			Now:  func() time.Time { return time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC) },
		}),
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc, Config{MaxUploadBytes: maxUpload})

	return router
}

func uploadFile(t *testing.T, router http.Handler, filename, content, username string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/transactions", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if username != "" {
		req.Header.Set("X-Username", username)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func do(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, body io.Reader) envelope[T] {
	t.Helper()

	var env envelope[T]
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestUploadThenQuery(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := uploadFile(t, router, "statement.csv", statement, "ana")
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	rec = do(t, router, http.MethodGet, "/transactions?page=1&page_size=500")
	if rec.Code != http.StatusOK {
		t.Fatalf("imports status = %d", rec.Code)
	}
	imports := decode[ImportsResponse](t, rec.Body)
	if len(imports.Data.Imports) != 1 {
		t.Fatalf("imports = %+v, want 1", imports.Data.Imports)
	}
	if got := imports.Data.Imports[0]; got.TransactionsDate != "2022-01-01" || got.Username != "ana" {
		t.Fatalf("import = %+v", got)
	}
	if imports.Meta["page_size"] != float64(100) {
		t.Fatalf("page_size meta = %v, want capped 100", imports.Meta["page_size"])
	}

	rec = do(t, router, http.MethodGet, "/transactions/imports/2022-01-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("import detail status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/transactions/days/2022-01-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("day status = %d", rec.Code)
	}
	day := decode[DayTransactionsResponse](t, rec.Body)
	if len(day.Data.Transactions) != 2 {
		t.Fatalf("day transactions = %d, want 2", len(day.Data.Transactions))
	}
	if day.Data.Transactions[1].Date != "2022-01-01T23:59:59" {
		t.Fatalf("last transaction date = %s", day.Data.Transactions[1].Date)
	}

	rec = do(t, router, http.MethodGet, "/report?month=2022-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	report := decode[ReportResponse](t, rec.Body)
	if !report.Data.Requested || report.Data.NoTransactions || report.Data.Frauds == nil {
		t.Fatalf("report = %+v, want frauds", report.Data)
	}
	if len(report.Data.Frauds.Transactions) != 1 || report.Data.Frauds.Transactions[0].Amount.String() != "150000" {
		t.Fatalf("fraud transactions = %+v", report.Data.Frauds.Transactions)
	}
	if report.Data.Date == nil || *report.Data.Date != "2022-01-01" {
		t.Fatalf("report date = %v", report.Data.Date)
	}
}

func TestUploadDefaultsToAnonymous(t *testing.T) {
	router := newTestRouter(t, 0)

	if rec := uploadFile(t, router, "statement.csv", statement, ""); rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}

	rec := do(t, router, http.MethodGet, "/transactions/imports/2022-01-01")
	info := decode[ImportInfo](t, rec.Body)
	if info.Data.Username != AnonymousUser {
		t.Fatalf("username = %q, want %q", info.Data.Username, AnonymousUser)
	}
}

func TestUploadRejections(t *testing.T) {
	router := newTestRouter(t, 64)

	tests := []struct {
		name    string
		content string
		code    int
	}{
		{name: "empty file", content: "", code: http.StatusUnprocessableEntity},
		{name: "too large", content: statement, code: http.StatusUnprocessableEntity},
		{name: "no valid line", content: "a,b,c\n", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := uploadFile(t, router, "statement.csv", tt.content, "ana")
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.code, rec.Body)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("raw"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("non multipart status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestImportDetailNotFound(t *testing.T) {
	router := newTestRouter(t, 0)

	missing := do(t, router, http.MethodGet, "/transactions/imports/2022-01-01")
	malformed := do(t, router, http.MethodGet, "/transactions/imports/not-a-date")

	for _, rec := range []*httptest.ResponseRecorder{missing, malformed} {
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	}
}

func TestReportWithoutData(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/report?month=2022-01")
	report := decode[ReportResponse](t, rec.Body)
	if !report.Data.NoTransactions || report.Data.Frauds != nil {
		t.Fatalf("report = %+v, want no transactions", report.Data)
	}
	if report.Data.Date == nil || *report.Data.Date != "2022-01-01" {
		t.Fatalf("report date = %v, want 2022-01-01", report.Data.Date)
	}

	rec = do(t, router, http.MethodGet, "/report?month=")
	report = decode[ReportResponse](t, rec.Body)
	if !report.Data.Requested || !report.Data.NoTransactions || report.Data.Date != nil {
		t.Fatalf("report = %+v, want requested without transactions", report.Data)
	}

	rec = do(t, router, http.MethodGet, "/report")
	report = decode[ReportResponse](t, rec.Body)
	if report.Data.Requested || report.Data.Date != nil {
		t.Fatalf("report = %+v, want nothing requested", report.Data)
	}
}

func TestGenerateAndReset(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/transactions/generate", nil)
	req.Header.Set("X-Username", "bia")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body)
	}

	imports := decode[ImportsResponse](t, do(t, router, http.MethodGet, "/transactions").Body)
	if len(imports.Data.Imports) != 1 || imports.Data.Imports[0].Username != "bia" {
		t.Fatalf("imports after generate = %+v", imports.Data.Imports)
	}

	if rec := do(t, router, http.MethodDelete, "/transactions"); rec.Code != http.StatusNoContent {
		t.Fatalf("reset status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	imports = decode[ImportsResponse](t, do(t, router, http.MethodGet, "/transactions").Body)
	if len(imports.Data.Imports) != 0 {
		t.Fatalf("imports after reset = %+v, want none", imports.Data.Imports)
	}
}

func TestPaginationValidation(t *testing.T) {
	router := newTestRouter(t, 0)

	targets := []string{
		"/transactions?page=0",
		"/transactions?page_size=x",
		"/transactions?page=184467440737095516&page_size=100",
		"/transactions/days/2022-01-01?page=-1",
		"/transactions/days/2022-01-01?page=184467440737095516&page_size=100",
		"/transactions/days/01-01-2022",
	}
	for _, target := range targets {
		if rec := do(t, router, http.MethodGet, target); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("GET %s status = %d, want %d", target, rec.Code, http.StatusUnprocessableEntity)
		}
	}
}
