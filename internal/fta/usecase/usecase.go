package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
	"github.com/shandysiswandi/gofta/internal/pkg/pkguid"
)

// Store persists transactions and import records.
//
// Lookups that miss return pkgerror.ErrNotFound. Between bounds are inclusive.
type Store interface {
	SaveTransactions(ctx context.Context, txs []entity.Transaction) error
	DeleteAllTransactions(ctx context.Context) error
	PageTransactionsBetween(ctx context.Context, start, end time.Time, page, pageSize int) (entity.Page[entity.Transaction], error)
	FindTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.Transaction, error)

	SaveImport(ctx context.Context, info entity.ImportInfo) error
	PageImports(ctx context.Context, page, pageSize int) (entity.Page[entity.ImportInfo], error)
	FindImportByTransactionsDate(ctx context.Context, date time.Time) (entity.ImportInfo, error)
	DeleteAllImports(ctx context.Context) error
}

// Analyzer turns an uploaded file into a deduplicated batch. Unreadable
// content is reported with pkgerror.NewInvalidFile.
type Analyzer interface {
	Analyze(ctx context.Context, filename string, data []byte) (entity.Batch, error)
}

type FraudDetector interface {
	DetectFrauds(ctx context.Context, txs []entity.Transaction) (entity.Frauds, error)
}

// Generator produces synthetic transactions sharing a single date.
type Generator interface {
	Generate(ctx context.Context) ([]entity.Transaction, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.ImportRecordedEvent) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store     Store
	Analyzer  Analyzer
	Detector  FraudDetector
	Generator Generator
	Events    EventPublisher
	Clock     Clock
	ImportID  pkguid.NumberID
	EventID   pkguid.StringID
}

type Usecase struct {
	store     Store
	analyzer  Analyzer
	detector  FraudDetector
	generator Generator
	events    EventPublisher
	clock     Clock
	importID  pkguid.NumberID
	eventID   pkguid.StringID
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:     dep.Store,
		analyzer:  dep.Analyzer,
		detector:  dep.Detector,
		generator: dep.Generator,
		events:    dep.Events,
		clock:     clock,
		importID:  dep.ImportID,
		eventID:   dep.EventID,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Ingest stores the transactions of an uploaded file, then one ImportInfo for
// them. Transactions are written first; a failure to write the ImportInfo is
// returned but does not undo the transaction write.
func (u *Usecase) Ingest(ctx context.Context, data []byte, filename, username string) error {
	if len(data) == 0 {
		return pkgerror.NewInvalidInput(errors.New("empty file"))
	}

	batch, err := u.analyzer.Analyze(ctx, filename, data)
	if err != nil {
		return normalizeErr(err)
	}

	if err := u.store.SaveTransactions(ctx, batch.Transactions); err != nil {
		return normalizeErr(err)
	}

	info, err := u.recordImport(ctx, batch.Date, username, len(batch.Transactions), entity.ImportSourceUpload)
	if err != nil {
		slog.ErrorContext(ctx, "transactions stored without import record", "file", filename, "count", len(batch.Transactions), "error", err)
		return err
	}

	slog.InfoContext(ctx, "file imported", "file", filename, "import_id", info.ID, "transactions_date", info.TransactionsDate.Format(entity.DateLayout), "count", len(batch.Transactions))

	return nil
}

// GenerateAndStore stores a synthetic batch and records it like an upload,
// dated by its first transaction.
func (u *Usecase) GenerateAndStore(ctx context.Context, username string) error {
	txs, err := u.generator.Generate(ctx)
	if err != nil {
		return normalizeErr(err)
	}
	if len(txs) == 0 {
		return pkgerror.NewServer(errors.New("generator returned no transactions"))
	}

	if err := u.store.SaveTransactions(ctx, txs); err != nil {
		return normalizeErr(err)
	}

	info, err := u.recordImport(ctx, txs[0].Day(), username, len(txs), entity.ImportSourceGenerator)
	if err != nil {
		slog.ErrorContext(ctx, "generated transactions stored without import record", "count", len(txs), "error", err)
		return err
	}

	slog.InfoContext(ctx, "transactions generated", "import_id", info.ID, "transactions_date", info.TransactionsDate.Format(entity.DateLayout), "count", len(txs))

	return nil
}

func (u *Usecase) recordImport(ctx context.Context, date time.Time, username string, count int, source entity.ImportSource) (entity.ImportInfo, error) {
	info := entity.ImportInfo{
		ImportedAt:       u.clock.Now(),
		TransactionsDate: entity.DayOf(date),
		Username:         username,
	}
	if u.importID != nil {
		info.ID = u.importID.Generate()
	}

	if err := u.store.SaveImport(ctx, info); err != nil {
		return entity.ImportInfo{}, normalizeErr(err)
	}

	u.publish(ctx, info, count, source)

	return info, nil
}

func (u *Usecase) publish(ctx context.Context, info entity.ImportInfo, count int, source entity.ImportSource) {
	if u.events == nil {
		return
	}

	event := entity.ImportRecordedEvent{
		CorrelationID: requestCorrelationID(ctx),
		Import:        info,
		Count:         count,
		Source:        source,
	}
	if u.eventID != nil {
		event.EventID = u.eventID.Generate()
	}

	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish import event", "import_id", info.ID, "event_id", event.EventID, "error", err)
	}
}

// Reset deletes every transaction and then every import record.
func (u *Usecase) Reset(ctx context.Context) error {
	if err := u.store.DeleteAllTransactions(ctx); err != nil {
		return normalizeErr(err)
	}

	if err := u.store.DeleteAllImports(ctx); err != nil {
		slog.ErrorContext(ctx, "transactions deleted but import records kept", "error", err)
		return normalizeErr(err)
	}

	slog.InfoContext(ctx, "all transactions and imports deleted")

	return nil
}

// PagedImports lists import records, latest transactions date first.
func (u *Usecase) PagedImports(ctx context.Context, page, pageSize int) (entity.Page[entity.ImportInfo], error) {
	if err := validatePage(page, pageSize); err != nil {
		return entity.Page[entity.ImportInfo]{}, err
	}

	result, err := u.store.PageImports(ctx, page, pageSize)
	if err != nil {
		return entity.Page[entity.ImportInfo]{}, normalizeErr(err)
	}

	return result, nil
}

// PagedTransactionsForDay lists the transactions of one calendar day.
func (u *Usecase) PagedTransactionsForDay(ctx context.Context, day time.Time, page, pageSize int) (entity.Page[entity.Transaction], error) {
	if err := validatePage(page, pageSize); err != nil {
		return entity.Page[entity.Transaction]{}, err
	}

	start, end := dayWindow(day)
	result, err := u.store.PageTransactionsBetween(ctx, start, end, page, pageSize)
	if err != nil {
		return entity.Page[entity.Transaction]{}, normalizeErr(err)
	}

	return result, nil
}

// ImportInfoForDate returns the import of the given "YYYY-MM-DD" date. A
// malformed date and a missing import produce the same not-found error.
func (u *Usecase) ImportInfoForDate(ctx context.Context, date string) (entity.ImportInfo, error) {
	day, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		slog.DebugContext(ctx, "import date does not parse", "date", date, "error", err)
		return entity.ImportInfo{}, errImportNotFound()
	}

	info, err := u.store.FindImportByTransactionsDate(ctx, day)
	if err != nil {
		if errors.Is(err, pkgerror.ErrNotFound) {
			return entity.ImportInfo{}, errImportNotFound()
		}
		return entity.ImportInfo{}, normalizeErr(err)
	}

	return info, nil
}

func validatePage(page, pageSize int) error {
	if !entity.PageInRange(page, pageSize) {
		return pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}
	return nil
}

func requestCorrelationID(ctx context.Context) string {
	if cid := pkglog.GetCorrelationID(ctx); cid != pkglog.MissingCorrelationID {
		return cid
	}
	return ""
}

func errImportNotFound() error {
	return pkgerror.NewNotFound("import not found")
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
