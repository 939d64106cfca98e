// Package fraud flags suspicious transactions, accounts and agencies by
// comparing amounts and monthly totals against fixed thresholds.
package fraud

import (
	"cmp"
	"context"
	"slices"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shopspring/decimal"
)

// Thresholds are inclusive lower bounds.
type Thresholds struct {
	Transaction decimal.Decimal
	Account     decimal.Decimal
	Agency      decimal.Decimal
}

// DefaultThresholds returns the limits used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Transaction: decimal.NewFromInt(100_000),
		Account:     decimal.NewFromInt(1_000_000),
		Agency:      decimal.NewFromInt(1_000_000_000),
	}
}

type Detector struct {
	limits Thresholds
}

func NewDetector(limits Thresholds) *Detector {
	return &Detector{limits: limits}
}

type accountKey struct {
	bank, agency, account string
	dir                   entity.Direction
}

type agencyKey struct {
	bank, agency string
	dir          entity.Direction
}

// DetectFrauds flags:
//   - every transaction whose amount reaches the transaction threshold,
//   - every account whose total sent or received reaches the account threshold,
//   - every agency whose total sent or received reaches the agency threshold.
//
// Flagged movements are ordered by amount, largest first.
func (d *Detector) DetectFrauds(ctx context.Context, txs []entity.Transaction) (entity.Frauds, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frauds{}, err
	}

	accounts := make(map[accountKey]decimal.Decimal)
	agencies := make(map[agencyKey]decimal.Decimal)
	frauds := entity.Frauds{
		Transactions: []entity.Transaction{},
		Accounts:     []entity.AccountMovement{},
		Agencies:     []entity.AgencyMovement{},
	}

	for _, tx := range txs {
		if tx.Amount.GreaterThanOrEqual(d.limits.Transaction) {
			frauds.Transactions = append(frauds.Transactions, tx)
		}

		out := accountKey{tx.OriginBank, tx.OriginAgency, tx.OriginAccount, entity.DirectionOut}
		in := accountKey{tx.DestinationBank, tx.DestinationAgency, tx.DestinationAccount, entity.DirectionIn}
		accounts[out] = accounts[out].Add(tx.Amount)
		accounts[in] = accounts[in].Add(tx.Amount)

		agOut := agencyKey{tx.OriginBank, tx.OriginAgency, entity.DirectionOut}
		agIn := agencyKey{tx.DestinationBank, tx.DestinationAgency, entity.DirectionIn}
		agencies[agOut] = agencies[agOut].Add(tx.Amount)
		agencies[agIn] = agencies[agIn].Add(tx.Amount)
	}

	for k, total := range accounts {
		if total.GreaterThanOrEqual(d.limits.Account) {
			frauds.Accounts = append(frauds.Accounts, entity.AccountMovement{
				Bank:      k.bank,
				Agency:    k.agency,
				Account:   k.account,
				Amount:    total,
				Direction: k.dir,
			})
		}
	}

	for k, total := range agencies {
		if total.GreaterThanOrEqual(d.limits.Agency) {
			frauds.Agencies = append(frauds.Agencies, entity.AgencyMovement{
				Bank:      k.bank,
				Agency:    k.agency,
				Amount:    total,
				Direction: k.dir,
			})
		}
	}

	slices.SortFunc(frauds.Accounts, func(a, b entity.AccountMovement) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Or(
			cmp.Compare(a.Bank, b.Bank),
			cmp.Compare(a.Agency, b.Agency),
			cmp.Compare(a.Account, b.Account),
			cmp.Compare(a.Direction, b.Direction),
		)
	})

	slices.SortFunc(frauds.Agencies, func(a, b entity.AgencyMovement) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Or(
			cmp.Compare(a.Bank, b.Bank),
			cmp.Compare(a.Agency, b.Agency),
			cmp.Compare(a.Direction, b.Direction),
		)
	})

	return frauds, nil
}
