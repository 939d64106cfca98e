package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/fta/usecase"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
)

type uc interface {
	Ingest(ctx context.Context, data []byte, filename, username string) error
	GenerateAndStore(ctx context.Context, username string) error
	Reset(ctx context.Context) error
	PagedImports(ctx context.Context, page, pageSize int) (entity.Page[entity.ImportInfo], error)
	PagedTransactionsForDay(ctx context.Context, day time.Time, page, pageSize int) (entity.Page[entity.Transaction], error)
	ImportInfoForDate(ctx context.Context, date string) (entity.ImportInfo, error)
	BuildMonthlyReport(ctx context.Context, month *string) usecase.MonthlyReport
}

// Config limits what the endpoints accept. A zero MaxUploadBytes falls back
// to DefaultMaxUploadBytes.
type Config struct {
	MaxUploadBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, cfg Config) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: cfg.MaxUploadBytes}
	if end.maxUploadBytes <= 0 {
		end.maxUploadBytes = DefaultMaxUploadBytes
	}

	username := pkgrouter.MiddlewareUsername(usernameHeader, AnonymousUser)

	r.GET("/transactions", end.Imports) // ?page=&page_size=
	r.POST("/transactions", end.Upload, username)
	r.DELETE("/transactions", end.Reset)
	r.POST("/transactions/generate", end.Generate, username)
	r.GET("/transactions/imports/:date", end.ImportDetail)
	r.GET("/transactions/days/:date", end.DayTransactions) // ?page=&page_size=

	r.GET("/report", end.Report) // ?month=YYYY-MM
}
