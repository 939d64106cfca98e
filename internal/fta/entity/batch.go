package entity

import (
	"math"
	"time"
)

// Batch is the outcome of analyzing one uploaded file: its unique transactions
// and the single calendar date they belong to.
type Batch struct {
	Transactions []Transaction
	Date         time.Time
}

// ImportInfo records one ingestion event.
type ImportInfo struct {
	ID               int64
	ImportedAt       time.Time
	TransactionsDate time.Time
	Username         string
}

// Page is one slice of an ordered result set. Page is 1-based.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
}

// PageInRange reports whether page and pageSize are positive and the offset of
// page fits in an int.
func PageInRange(page, pageSize int) bool {
	return page >= 1 && pageSize >= 1 && page-1 <= math.MaxInt/pageSize
}

// Offset returns the index of the first item of page, or -1 when the page is
// out of range.
func Offset(page, pageSize int) int {
	if !PageInRange(page, pageSize) {
		return -1
	}
	return (page - 1) * pageSize
}

// Slice cuts the page of items out of the full ordered list. A page past the
// end is empty.
func Slice[T any](all []T, page, pageSize int) Page[T] {
	result := Page[T]{
		Items:    []T{},
		Page:     page,
		PageSize: pageSize,
		Total:    len(all),
	}

	start := Offset(page, pageSize)
	if start < 0 || start >= len(all) {
		return result
	}
	end := len(all)
	if pageSize < end-start {
		end = start + pageSize
	}

	result.Items = make([]T, end-start)
	copy(result.Items, all[start:end])

	return result
}
