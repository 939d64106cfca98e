package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/fta/usecase"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
	"github.com/shopspring/decimal"
)

var (
	_ usecase.Store = (*InMemoryStore)(nil)
	_ usecase.Store = (*SQLiteStore)(nil)
)

func tx(account, amount string, date time.Time) entity.Transaction {
	return entity.Transaction{
		OriginBank:         "BANCO DO BRASIL",
		OriginAgency:       "0001",
		OriginAccount:      account,
		DestinationBank:    "BANCO BRADESCO",
		DestinationAgency:  "0002",
		DestinationAccount: "00002-2",
		Amount:             decimal.RequireFromString(amount),
		Date:               date,
	}
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05.999999999", value)
	if err != nil {
		panic(err)
	}
	return t
}

// runStoreSuite checks the behavior every usecase.Store has to share.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) usecase.Store) {
	t.Run("SaveTransactions ignores duplicates", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		first := tx("00001-1", "100.50", at("2022-01-01T10:00:00"))
		second := tx("00001-1", "100.5", at("2022-01-01T10:00:00"))
		third := tx("00003-3", "7", at("2022-01-01T11:00:00"))

		if err := store.SaveTransactions(ctx, []entity.Transaction{first}); err != nil {
			t.Fatalf("SaveTransactions() err = %v", err)
		}
		if err := store.SaveTransactions(ctx, []entity.Transaction{second, third}); err != nil {
			t.Fatalf("SaveTransactions() err = %v", err)
		}
		if err := store.SaveTransactions(ctx, nil); err != nil {
			t.Fatalf("SaveTransactions(nil) err = %v", err)
		}

		got, err := store.FindTransactionsBetween(ctx, at("2022-01-01T00:00:00"), at("2022-01-01T23:59:59"))
		if err != nil {
			t.Fatalf("FindTransactionsBetween() err = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("FindTransactionsBetween() len = %d, want 2", len(got))
		}
		if !got[0].Amount.Equal(decimal.RequireFromString("100.5")) {
			t.Fatalf("FindTransactionsBetween()[0].Amount = %s, want 100.5", got[0].Amount)
		}
		if !got[1].Date.Equal(third.Date) {
			t.Fatalf("FindTransactionsBetween()[1].Date = %v, want %v", got[1].Date, third.Date)
		}
	})

	t.Run("window bounds are inclusive at second precision", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		txs := []entity.Transaction{
			tx("a", "1", at("2021-12-31T23:59:59")),
			tx("b", "1", at("2022-01-01T00:00:00")),
			tx("c", "1", at("2022-01-01T23:59:59")),
			tx("d", "1", at("2022-01-01T23:59:59.5")),
			tx("e", "1", at("2022-01-02T00:00:00")),
		}
		if err := store.SaveTransactions(ctx, txs); err != nil {
			t.Fatalf("SaveTransactions() err = %v", err)
		}

		got, err := store.PageTransactionsBetween(ctx, at("2022-01-01T00:00:00"), at("2022-01-01T23:59:59"), 1, 10)
		if err != nil {
			t.Fatalf("PageTransactionsBetween() err = %v", err)
		}
		if got.Total != 2 || len(got.Items) != 2 {
			t.Fatalf("PageTransactionsBetween() total = %d len = %d, want 2 and 2", got.Total, len(got.Items))
		}
		if got.Items[0].OriginAccount != "b" || got.Items[1].OriginAccount != "c" {
			t.Fatalf("PageTransactionsBetween() accounts = %q %q, want b c", got.Items[0].OriginAccount, got.Items[1].OriginAccount)
		}

		second, err := store.PageTransactionsBetween(ctx, at("2021-12-31T00:00:00"), at("2022-01-02T00:00:00"), 2, 2)
		if err != nil {
			t.Fatalf("PageTransactionsBetween() err = %v", err)
		}
		if second.Total != 5 || len(second.Items) != 2 {
			t.Fatalf("PageTransactionsBetween() page 2 total = %d len = %d, want 5 and 2", second.Total, len(second.Items))
		}
		if second.Items[0].OriginAccount != "c" {
			t.Fatalf("PageTransactionsBetween() page 2 first = %q, want c", second.Items[0].OriginAccount)
		}
	})

	t.Run("imports are ordered newest day first", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		infos := []entity.ImportInfo{
			{ID: 1, ImportedAt: at("2022-02-01T09:00:00"), TransactionsDate: at("2022-01-01T00:00:00"), Username: "ana"},
			{ID: 2, ImportedAt: at("2022-02-01T10:00:00"), TransactionsDate: at("2022-01-03T00:00:00"), Username: "bia"},
			{ID: 3, ImportedAt: at("2022-02-02T10:00:00"), TransactionsDate: at("2022-01-01T00:00:00"), Username: "caio"},
		}
		for _, info := range infos {
			if err := store.SaveImport(ctx, info); err != nil {
				t.Fatalf("SaveImport(%d) err = %v", info.ID, err)
			}
		}

		got, err := store.PageImports(ctx, 1, 10)
		if err != nil {
			t.Fatalf("PageImports() err = %v", err)
		}
		if got.Total != 3 {
			t.Fatalf("PageImports() total = %d, want 3", got.Total)
		}
		wantIDs := []int64{2, 3, 1}
		for i, id := range wantIDs {
			if got.Items[i].ID != id {
				t.Fatalf("PageImports()[%d].ID = %d, want %d", i, got.Items[i].ID, id)
			}
		}

		found, err := store.FindImportByTransactionsDate(ctx, at("2022-01-01T00:00:00"))
		if err != nil {
			t.Fatalf("FindImportByTransactionsDate() err = %v", err)
		}
		if found.ID != 3 || found.Username != "caio" {
			t.Fatalf("FindImportByTransactionsDate() = %+v, want import 3 by caio", found)
		}
		if !found.TransactionsDate.Equal(at("2022-01-01T00:00:00")) {
			t.Fatalf("FindImportByTransactionsDate() date = %v", found.TransactionsDate)
		}
	})

	t.Run("pages past the end are empty", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		if err := store.SaveTransactions(ctx, []entity.Transaction{tx("a", "1", at("2022-01-01T10:00:00"))}); err != nil {
			t.Fatalf("SaveTransactions() err = %v", err)
		}
		info := entity.ImportInfo{ID: 1, ImportedAt: at("2022-01-02T09:00:00"), TransactionsDate: at("2022-01-01T00:00:00"), Username: "ana"}
		if err := store.SaveImport(ctx, info); err != nil {
			t.Fatalf("SaveImport() err = %v", err)
		}

		for _, page := range []int{2, math.MaxInt / 50} {
			imports, err := store.PageImports(ctx, page, 100)
			if err != nil {
				t.Fatalf("PageImports(%d) err = %v", page, err)
			}
			if imports.Total != 1 || len(imports.Items) != 0 {
				t.Fatalf("PageImports(%d) total = %d len = %d, want 1 and 0", page, imports.Total, len(imports.Items))
			}

			txs, err := store.PageTransactionsBetween(ctx, at("2022-01-01T00:00:00"), at("2022-01-01T23:59:59"), page, 100)
			if err != nil {
				t.Fatalf("PageTransactionsBetween(%d) err = %v", page, err)
			}
			if txs.Total != 1 || len(txs.Items) != 0 {
				t.Fatalf("PageTransactionsBetween(%d) total = %d len = %d, want 1 and 0", page, txs.Total, len(txs.Items))
			}
		}
	})

	t.Run("missing import is not found", func(t *testing.T) {
		store := newStore(t)

		_, err := store.FindImportByTransactionsDate(context.Background(), at("2030-01-01T00:00:00"))
		if !errors.Is(err, pkgerror.ErrNotFound) {
			t.Fatalf("FindImportByTransactionsDate() err = %v, want %v", err, pkgerror.ErrNotFound)
		}
	})

	t.Run("delete all empties both collections", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		if err := store.SaveTransactions(ctx, []entity.Transaction{tx("a", "1", at("2022-01-01T10:00:00"))}); err != nil {
			t.Fatalf("SaveTransactions() err = %v", err)
		}
		if err := store.SaveImport(ctx, entity.ImportInfo{ID: 9, ImportedAt: at("2022-01-02T00:00:00"), TransactionsDate: at("2022-01-01T00:00:00"), Username: "ana"}); err != nil {
			t.Fatalf("SaveImport() err = %v", err)
		}

		if err := store.DeleteAllTransactions(ctx); err != nil {
			t.Fatalf("DeleteAllTransactions() err = %v", err)
		}
		if err := store.DeleteAllImports(ctx); err != nil {
			t.Fatalf("DeleteAllImports() err = %v", err)
		}

		txs, err := store.FindTransactionsBetween(ctx, at("2000-01-01T00:00:00"), at("2100-01-01T00:00:00"))
		if err != nil {
			t.Fatalf("FindTransactionsBetween() err = %v", err)
		}
		if len(txs) != 0 {
			t.Fatalf("FindTransactionsBetween() len = %d, want 0", len(txs))
		}

		imports, err := store.PageImports(ctx, 1, 10)
		if err != nil {
			t.Fatalf("PageImports() err = %v", err)
		}
		if imports.Total != 0 || len(imports.Items) != 0 {
			t.Fatalf("PageImports() total = %d, want 0", imports.Total)
		}
	})
}
