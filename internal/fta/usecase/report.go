package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
)

var errNoTransactions = errors.New("no transactions in month")

// BuildMonthlyReport runs the fraud detector over the transactions of month
// ("YYYY-MM"). A nil month means no report was requested; an empty one is
// requested and fails to parse. Any failure (bad month, no transactions,
// detector error) yields NoTransactions with the cause logged, never an error.
func (u *Usecase) BuildMonthlyReport(ctx context.Context, month *string) MonthlyReport {
	if month == nil {
		return MonthlyReport{}
	}

	report := MonthlyReport{Requested: true}

	frauds, err := u.monthlyFrauds(ctx, *month, &report)
	if err != nil {
		slog.WarnContext(ctx, "monthly report has no data", "month", *month, "error", err)
		report.NoTransactions = true
		return report
	}

	report.Frauds = &frauds
	return report
}

func (u *Usecase) monthlyFrauds(ctx context.Context, month string, report *MonthlyReport) (frauds entity.Frauds, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("fraud detection panicked: %v", rvr)
		}
	}()

	start, end, err := monthWindow(month)
	if err != nil {
		return entity.Frauds{}, err
	}
	report.Date = &start

	txs, err := u.store.FindTransactionsBetween(ctx, start, end)
	if err != nil {
		return entity.Frauds{}, err
	}
	if len(txs) == 0 {
		return entity.Frauds{}, errNoTransactions
	}

	return u.detector.DetectFrauds(ctx, txs)
}
