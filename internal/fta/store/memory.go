package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
)

// InMemoryStore keeps transactions and imports in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	txs     []entity.Transaction
	keys    map[entity.TxKey]struct{}
	imports []entity.ImportInfo
	lastID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		keys: make(map[entity.TxKey]struct{}),
	}
}

// SaveTransactions inserts txs, ignoring any whose key is already stored.
func (s *InMemoryStore) SaveTransactions(ctx context.Context, txs []entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		key := tx.Key()
		if _, exists := s.keys[key]; exists {
			continue
		}
		s.keys[key] = struct{}{}
		s.txs = append(s.txs, tx)
	}

	return nil
}

func (s *InMemoryStore) DeleteAllTransactions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = nil
	s.keys = make(map[entity.TxKey]struct{})

	return nil
}

func (s *InMemoryStore) PageTransactionsBetween(ctx context.Context, start, end time.Time, page, pageSize int) (entity.Page[entity.Transaction], error) {
	return entity.Slice(s.between(start, end), page, pageSize), nil
}

func (s *InMemoryStore) FindTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.Transaction, error) {
	return s.between(start, end), nil
}

// between returns the transactions in [start, end] ordered by date.
func (s *InMemoryStore) between(start, end time.Time) []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.Transaction, 0)
	for _, tx := range s.txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		items = append(items, tx)
	}

	slices.SortStableFunc(items, func(a, b entity.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return items
}

// SaveImport stores info, assigning an ID when it has none.
func (s *InMemoryStore) SaveImport(ctx context.Context, info entity.ImportInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info.ID == 0 {
		s.lastID++
		info.ID = s.lastID
	}
	for _, existing := range s.imports {
		if existing.ID == info.ID {
			return pkgerror.NewBusiness("import already exists", pkgerror.CodeConflict)
		}
	}
	s.lastID = max(s.lastID, info.ID)

	s.imports = append(s.imports, info)

	return nil
}

func (s *InMemoryStore) PageImports(ctx context.Context, page, pageSize int) (entity.Page[entity.ImportInfo], error) {
	s.mu.RLock()
	items := slices.Clone(s.imports)
	s.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b entity.ImportInfo) int {
		return cmp.Or(
			b.TransactionsDate.Compare(a.TransactionsDate),
			b.ImportedAt.Compare(a.ImportedAt),
		)
	})

	return entity.Slice(items, page, pageSize), nil
}

// FindImportByTransactionsDate returns the most recent import for date.
func (s *InMemoryStore) FindImportByTransactionsDate(ctx context.Context, date time.Time) (entity.ImportInfo, error) {
	day := entity.DayOf(date)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found entity.ImportInfo
		ok    bool
	)
	for _, info := range s.imports {
		if !info.TransactionsDate.Equal(day) {
			continue
		}
		if !ok || info.ImportedAt.After(found.ImportedAt) {
			found, ok = info, true
		}
	}
	if !ok {
		return entity.ImportInfo{}, pkgerror.ErrNotFound
	}

	return found, nil
}

func (s *InMemoryStore) DeleteAllImports(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imports = nil

	return nil
}
