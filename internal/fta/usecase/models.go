package usecase

import (
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
)

// MonthlyReport is the outcome of a fraud report request.
//
// Requested is false when no month was asked for. Date is set as soon as the
// month parses, even if the rest of the pipeline fails. Frauds is only set
// when NoTransactions is false.
type MonthlyReport struct {
	Requested      bool
	Date           *time.Time
	Frauds         *entity.Frauds
	NoTransactions bool
}
