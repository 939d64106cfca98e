package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/fta/usecase"
	"github.com/shopspring/decimal"
)

const dateTimeLayout = "2006-01-02T15:04:05"

type Transaction struct {
	OriginBank         string          `json:"origin_bank"`
	OriginAgency       string          `json:"origin_agency"`
	OriginAccount      string          `json:"origin_account"`
	DestinationBank    string          `json:"destination_bank"`
	DestinationAgency  string          `json:"destination_agency"`
	DestinationAccount string          `json:"destination_account"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
}

type ImportInfo struct {
	ID               int64  `json:"id,string"`
	ImportedAt       string `json:"imported_at"`
	TransactionsDate string `json:"transactions_date"`
	Username         string `json:"username"`
}

type ImportedResponse struct {
	File string `json:"file"`
}

func (ImportedResponse) StatusCode() int {
	return http.StatusCreated
}

func (ImportedResponse) Message() string {
	return "file imported"
}

type GeneratedResponse struct{}

func (GeneratedResponse) StatusCode() int {
	return http.StatusCreated
}

func (GeneratedResponse) Message() string {
	return "transactions generated"
}

type ImportsResponse struct {
	Imports  []ImportInfo `json:"imports"`
	page     int
	pageSize int
	total    int
}

func (r ImportsResponse) Meta() map[string]any {
	return pageMeta(r.page, r.pageSize, r.total)
}

type DayTransactionsResponse struct {
	Date         string        `json:"date"`
	Transactions []Transaction `json:"transactions"`
	page         int
	pageSize     int
	total        int
}

func (r DayTransactionsResponse) Meta() map[string]any {
	return pageMeta(r.page, r.pageSize, r.total)
}

type AccountMovement struct {
	Bank      string           `json:"bank"`
	Agency    string           `json:"agency"`
	Account   string           `json:"account"`
	Amount    decimal.Decimal  `json:"amount"`
	Direction entity.Direction `json:"direction"`
}

type AgencyMovement struct {
	Bank      string           `json:"bank"`
	Agency    string           `json:"agency"`
	Amount    decimal.Decimal  `json:"amount"`
	Direction entity.Direction `json:"direction"`
}

type Frauds struct {
	Transactions []Transaction     `json:"transactions"`
	Accounts     []AccountMovement `json:"accounts"`
	Agencies     []AgencyMovement  `json:"agencies"`
}

// ReportResponse mirrors usecase.MonthlyReport. Date is "YYYY-MM-DD" of the
// first day of the month when the month parsed.
type ReportResponse struct {
	Requested      bool    `json:"requested"`
	Date           *string `json:"date"`
	NoTransactions bool    `json:"no_transactions"`
	Frauds         *Frauds `json:"frauds,omitempty"`
}

func (r ReportResponse) Message() string {
	switch {
	case !r.Requested:
		return "no month requested"
	case r.NoTransactions:
		return "no transactions for month"
	default:
		return "report generated"
	}
}

func pageMeta(page, pageSize, total int) map[string]any {
	return map[string]any{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	}
}

func toHTTPTransaction(tx entity.Transaction) Transaction {
	return Transaction{
		OriginBank:         tx.OriginBank,
		OriginAgency:       tx.OriginAgency,
		OriginAccount:      tx.OriginAccount,
		DestinationBank:    tx.DestinationBank,
		DestinationAgency:  tx.DestinationAgency,
		DestinationAccount: tx.DestinationAccount,
		Amount:             tx.Amount,
		Date:               tx.Date.Format(dateTimeLayout),
	}
}

func toHTTPTransactions(txs []entity.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toHTTPTransaction(tx))
	}
	return out
}

func toHTTPImport(info entity.ImportInfo) ImportInfo {
	return ImportInfo{
		ID:               info.ID,
		ImportedAt:       info.ImportedAt.Format(time.RFC3339),
		TransactionsDate: info.TransactionsDate.Format(entity.DateLayout),
		Username:         info.Username,
	}
}

// NewReportResponse renders report for clients of the API and the CLI.
func NewReportResponse(report usecase.MonthlyReport) ReportResponse {
	resp := ReportResponse{
		Requested:      report.Requested,
		NoTransactions: report.NoTransactions,
	}

	if report.Date != nil {
		date := report.Date.Format(entity.DateLayout)
		resp.Date = &date
	}

	if report.Frauds != nil {
		frauds := Frauds{
			Transactions: toHTTPTransactions(report.Frauds.Transactions),
			Accounts:     make([]AccountMovement, 0, len(report.Frauds.Accounts)),
			Agencies:     make([]AgencyMovement, 0, len(report.Frauds.Agencies)),
		}
		for _, m := range report.Frauds.Accounts {
			frauds.Accounts = append(frauds.Accounts, AccountMovement{
				Bank:      m.Bank,
				Agency:    m.Agency,
				Account:   m.Account,
				Amount:    m.Amount,
				Direction: m.Direction,
			})
		}
		for _, m := range report.Frauds.Agencies {
			frauds.Agencies = append(frauds.Agencies, AgencyMovement{
				Bank:      m.Bank,
				Agency:    m.Agency,
				Amount:    m.Amount,
				Direction: m.Direction,
			})
		}
		resp.Frauds = &frauds
	}

	return resp
}
