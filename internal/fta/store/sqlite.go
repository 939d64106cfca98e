package store

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

type transactionRow struct {
	ID                 uint            `gorm:"primaryKey"`
	OriginBank         string          `gorm:"size:128;not null;uniqueIndex:idx_transaction_identity"`
	OriginAgency       string          `gorm:"size:32;not null;uniqueIndex:idx_transaction_identity"`
	OriginAccount      string          `gorm:"size:32;not null;uniqueIndex:idx_transaction_identity"`
	DestinationBank    string          `gorm:"size:128;not null;uniqueIndex:idx_transaction_identity"`
	DestinationAgency  string          `gorm:"size:32;not null;uniqueIndex:idx_transaction_identity"`
	DestinationAccount string          `gorm:"size:32;not null;uniqueIndex:idx_transaction_identity"`
	Amount             decimal.Decimal `gorm:"type:text;not null;uniqueIndex:idx_transaction_identity"`
	Date               time.Time       `gorm:"not null;index;uniqueIndex:idx_transaction_identity"`
}

func (transactionRow) TableName() string {
	return "transactions"
}

type importRow struct {
	ID               int64     `gorm:"primaryKey"`
	ImportedAt       time.Time `gorm:"not null"`
	TransactionsDate string    `gorm:"size:10;not null;index"`
	Username         string    `gorm:"size:128;not null"`
}

func (importRow) TableName() string {
	return "import_infos"
}

// SQLiteStore persists transactions and imports through gorm. Timestamps are
// stored in UTC so that text comparison in SQLite follows time order.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore migrates the schema and returns the store.
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&transactionRow{}, &importRow{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// SaveTransactions inserts txs; rows whose full identity already exists are ignored.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, txs []entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	rows := make([]transactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toTransactionRow(tx))
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, insertBatchSize).Error
}

func (s *SQLiteStore) DeleteAllTransactions(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&transactionRow{}).Error
}

func (s *SQLiteStore) PageTransactionsBetween(ctx context.Context, start, end time.Time, page, pageSize int) (entity.Page[entity.Transaction], error) {
	query := s.between(ctx, start, end)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return entity.Page[entity.Transaction]{}, err
	}

	var rows []transactionRow
	if offset := entity.Offset(page, pageSize); offset >= 0 && int64(offset) < total {
		if err := query.Order("date ASC, id ASC").
			Offset(offset).
			Limit(pageSize).
			Find(&rows).Error; err != nil {
			return entity.Page[entity.Transaction]{}, err
		}
	}

	return entity.Page[entity.Transaction]{
		Items:    fromTransactionRows(rows),
		Page:     page,
		PageSize: pageSize,
		Total:    int(total),
	}, nil
}

func (s *SQLiteStore) FindTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.Transaction, error) {
	var rows []transactionRow
	if err := s.between(ctx, start, end).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return fromTransactionRows(rows), nil
}

func (s *SQLiteStore) between(ctx context.Context, start, end time.Time) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&transactionRow{}).
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC())
}

func (s *SQLiteStore) SaveImport(ctx context.Context, info entity.ImportInfo) error {
	row := importRow{
		ID:               info.ID,
		ImportedAt:       info.ImportedAt.UTC(),
		TransactionsDate: info.TransactionsDate.Format(entity.DateLayout),
		Username:         info.Username,
	}

	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SQLiteStore) PageImports(ctx context.Context, page, pageSize int) (entity.Page[entity.ImportInfo], error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&importRow{}).Count(&total).Error; err != nil {
		return entity.Page[entity.ImportInfo]{}, err
	}

	var rows []importRow
	if offset := entity.Offset(page, pageSize); offset >= 0 && int64(offset) < total {
		if err := s.db.WithContext(ctx).
			Order("transactions_date DESC, imported_at DESC").
			Offset(offset).
			Limit(pageSize).
			Find(&rows).Error; err != nil {
			return entity.Page[entity.ImportInfo]{}, err
		}
	}

	items := make([]entity.ImportInfo, 0, len(rows))
	for _, row := range rows {
		info, err := fromImportRow(row)
		if err != nil {
			return entity.Page[entity.ImportInfo]{}, err
		}
		items = append(items, info)
	}

	return entity.Page[entity.ImportInfo]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    int(total),
	}, nil
}

// FindImportByTransactionsDate returns the most recent import for date.
func (s *SQLiteStore) FindImportByTransactionsDate(ctx context.Context, date time.Time) (entity.ImportInfo, error) {
	var row importRow
	err := s.db.WithContext(ctx).
		Where("transactions_date = ?", date.Format(entity.DateLayout)).
		Order("imported_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ImportInfo{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.ImportInfo{}, err
	}

	return fromImportRow(row)
}

func (s *SQLiteStore) DeleteAllImports(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&importRow{}).Error
}

func toTransactionRow(tx entity.Transaction) transactionRow {
	return transactionRow{
		OriginBank:         tx.OriginBank,
		OriginAgency:       tx.OriginAgency,
		OriginAccount:      tx.OriginAccount,
		DestinationBank:    tx.DestinationBank,
		DestinationAgency:  tx.DestinationAgency,
		DestinationAccount: tx.DestinationAccount,
		Amount:             tx.Amount,
		Date:               tx.Date.UTC(),
	}
}

func fromTransactionRows(rows []transactionRow) []entity.Transaction {
	txs := make([]entity.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, entity.Transaction{
			OriginBank:         row.OriginBank,
			OriginAgency:       row.OriginAgency,
			OriginAccount:      row.OriginAccount,
			DestinationBank:    row.DestinationBank,
			DestinationAgency:  row.DestinationAgency,
			DestinationAccount: row.DestinationAccount,
			Amount:             row.Amount,
			Date:               row.Date.UTC(),
		})
	}
	return txs
}

func fromImportRow(row importRow) (entity.ImportInfo, error) {
	day, err := time.Parse(entity.DateLayout, row.TransactionsDate)
	if err != nil {
		return entity.ImportInfo{}, err
	}

	return entity.ImportInfo{
		ID:               row.ID,
		ImportedAt:       row.ImportedAt.UTC(),
		TransactionsDate: day,
		Username:         row.Username,
	}, nil
}
