package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgroutine"
)

type Handler interface {
	Handle(ctx context.Context, event entity.ImportRecordedEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// DedupeSize is how many recent event ids are remembered for
	// deduplication.
	DedupeSize int
}

// AuditConsumer drains the bus with a fixed set of workers. Events are handled
// at most once per event id among the last DedupeSize ids; a failing handler
// is retried with exponential backoff.
type AuditConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *seenSet
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	dedupeSize := cfg.DedupeSize
	if dedupeSize < 1 {
		dedupeSize = 4096
	}

	return &AuditConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  max(cfg.MaxRetries, 0),
		baseBackoff: baseBackoff,
		seen:        newSeenSet(dedupeSize),
	}
}

// Start schedules the workers on gm. They run until the bus is closed.
func (c *AuditConsumer) Start(ctx context.Context, gm *pkgroutine.Manager) {
	for i := range c.workers {
		c.wg.Add(1)
		gm.Go(ctx, fmt.Sprintf("import-audit-%d", i), func(ctx context.Context) error {
			defer c.wg.Done()
			c.work(ctx)
			return nil
		})
	}
}

// Stop closes the bus and waits for the workers to drain it.
func (c *AuditConsumer) Stop(ctx context.Context) error {
	c.bus.Close()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) work(ctx context.Context) {
	for event := range c.bus.Subscribe() {
		c.process(ctx, event)
	}
}

func (c *AuditConsumer) process(ctx context.Context, event entity.ImportRecordedEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if c.seen.add(event.EventID) {
			slog.InfoContext(ctx, "skip duplicate import event", "event_id", event.EventID, "import_id", event.Import.ID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(ctx, event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.ErrorContext(ctx, "failed to audit import after retries", "event_id", event.EventID, "import_id", event.Import.ID, "error", err)
			return
		}

		time.Sleep(backoff)
		backoff *= 2
	}
}

// AuditLogger writes one structured log line per recorded import.
type AuditLogger struct {
	Logger *slog.Logger
}

func (a AuditLogger) Handle(ctx context.Context, event entity.ImportRecordedEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "import recorded",
		"event_id", event.EventID,
		"request_correlation_id", event.CorrelationID,
		"import_id", event.Import.ID,
		"transactions_date", event.Import.TransactionsDate.Format(entity.DateLayout),
		"imported_at", event.Import.ImportedAt,
		"username", event.Import.Username,
		"source", event.Source,
		"count", event.Count,
	)

	return nil
}
