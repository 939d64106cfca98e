package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used for batch dates.
const DateLayout = "2006-01-02"

// Transaction is a single money movement between two bank accounts.
// Values are never mutated once built by an analyzer or generator.
type Transaction struct {
	OriginBank         string
	OriginAgency       string
	OriginAccount      string
	DestinationBank    string
	DestinationAgency  string
	DestinationAccount string
	Amount             decimal.Decimal
	Date               time.Time
}

// TxKey is the comparable identity of a transaction: every field of it.
type TxKey struct {
	OriginBank         string
	OriginAgency       string
	OriginAccount      string
	DestinationBank    string
	DestinationAgency  string
	DestinationAccount string
	Amount             string
	Date               int64
}

// Key returns the identity of tx. Amounts equal in value ("10.5" and "10.50")
// produce the same key.
func (tx Transaction) Key() TxKey {
	return TxKey{
		OriginBank:         tx.OriginBank,
		OriginAgency:       tx.OriginAgency,
		OriginAccount:      tx.OriginAccount,
		DestinationBank:    tx.DestinationBank,
		DestinationAgency:  tx.DestinationAgency,
		DestinationAccount: tx.DestinationAccount,
		Amount:             tx.Amount.String(),
		Date:               tx.Date.UnixNano(),
	}
}

// Day returns the calendar date of the transaction at midnight UTC.
func (tx Transaction) Day() time.Time {
	return DayOf(tx.Date)
}

// DayOf truncates t to its calendar date at midnight UTC, keeping the wall
// clock date regardless of t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dedupe drops transactions whose key was already seen, keeping the first
// occurrence order.
func Dedupe(txs []Transaction) []Transaction {
	seen := make(map[TxKey]struct{}, len(txs))
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}
	return out
}
