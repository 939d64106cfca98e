// Package analyzer reads uploaded statement files into transaction batches.
//
// A batch covers a single calendar day: the date of the first valid line.
// Lines that are incomplete, unparsable or dated on another day are skipped.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
)

// ErrNoTransactions is wrapped into the invalid file error when a file has
// no usable line.
var ErrNoTransactions = errors.New("file has no valid transaction")

// Stats describes how the lines of one file were handled.
type Stats struct {
	TotalLines int
	Accepted   int
	Invalid    int
	OtherDate  int
	Duplicates int
}

type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze parses data according to the filename extension (.xlsx or CSV).
func (a *Analyzer) Analyze(ctx context.Context, filename string, data []byte) (entity.Batch, error) {
	batch, stats, err := a.AnalyzeWithStats(ctx, filename, data)
	if err != nil {
		return entity.Batch{}, err
	}

	slog.DebugContext(ctx, "file analyzed",
		"file", filename,
		"total_lines", stats.TotalLines,
		"accepted", stats.Accepted,
		"invalid", stats.Invalid,
		"other_date", stats.OtherDate,
		"duplicates", stats.Duplicates,
	)

	return batch, nil
}

// AnalyzeWithStats is Analyze that also reports per-line outcomes.
func (a *Analyzer) AnalyzeWithStats(ctx context.Context, filename string, data []byte) (entity.Batch, Stats, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return entity.Batch{}, Stats{}, pkgerror.NewInvalidFile(err)
	}

	return buildBatch(ctx, rows)
}

func buildBatch(ctx context.Context, rows [][]string) (entity.Batch, Stats, error) {
	var (
		batch entity.Batch
		st    Stats
		day   time.Time
		txs   []entity.Transaction
	)

	for i, record := range rows {
		if isBlank(record) {
			continue
		}
		st.TotalLines++

		tx, err := parseRecord(record)
		if err != nil {
			st.Invalid++
			slog.WarnContext(ctx, "skip invalid line", "line", i+1, "error", err)
			continue
		}

		if day.IsZero() {
			day = tx.Day()
		} else if !tx.Day().Equal(day) {
			st.OtherDate++
			slog.WarnContext(ctx, "skip line with another date", "line", i+1, "date", tx.Date.Format(entity.DateLayout), "batch_date", day.Format(entity.DateLayout))
			continue
		}

		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return entity.Batch{}, st, pkgerror.NewInvalidFile(fmt.Errorf("%w (%d lines read)", ErrNoTransactions, st.TotalLines))
	}

	batch.Transactions = entity.Dedupe(txs)
	batch.Date = day
	st.Accepted = len(batch.Transactions)
	st.Duplicates = len(txs) - st.Accepted

	return batch, st, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
