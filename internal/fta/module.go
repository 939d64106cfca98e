package fta

import (
	"context"
	"fmt"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/analyzer"
	"github.com/shandysiswandi/gofta/internal/fta/event"
	"github.com/shandysiswandi/gofta/internal/fta/fraud"
	"github.com/shandysiswandi/gofta/internal/fta/generator"
	"github.com/shandysiswandi/gofta/internal/fta/inbound"
	"github.com/shandysiswandi/gofta/internal/fta/store"
	"github.com/shandysiswandi/gofta/internal/fta/usecase"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gofta/internal/pkg/pkguid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dependency is what the module needs from the application. Router may be nil
// when the module is driven from the command line; DB nil selects the
// in-memory store.
type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	DB        *gorm.DB
	UUID      pkguid.StringID
	Snowflake pkguid.NumberID
}

type Module struct {
	Usecase  *usecase.Usecase
	consumer *event.AuditConsumer
}

func New(dep Dependency) (*Module, error) {
	storage, err := newStore(dep.DB)
	if err != nil {
		return nil, err
	}

	thresholds, err := loadThresholds(dep.Config)
	if err != nil {
		return nil, err
	}

	if dep.UUID == nil {
		dep.UUID = pkguid.NewUUID()
	}
	if dep.Snowflake == nil {
		node, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.Snowflake = node
	}

	bus := event.NewBus(int(dep.Config.GetInt("events.buffer")))
	consumer := event.NewAuditConsumer(bus, event.AuditLogger{}, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("events.workers")),
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
		DedupeSize:  int(dep.Config.GetInt("events.dedupe_size")),
	})
	consumer.Start(dep.Context, dep.Goroutine)

	uc := usecase.New(usecase.Dependency{
		Store:    storage,
		Analyzer: analyzer.New(),
		Detector: fraud.NewDetector(thresholds),
		Generator: generator.New(generator.Config{
			Size:  int(dep.Config.GetInt("generator.size")),
			Banks: dep.Config.GetArray("generator.banks"),
		}),
		Events:   bus,
		ImportID: dep.Snowflake,
		EventID:  dep.UUID,
	})

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Config{
			MaxUploadBytes: dep.Config.GetInt("upload.max_bytes"),
		})
	}

	return &Module{Usecase: uc, consumer: consumer}, nil
}

// Close stops the event consumer once the queued events are handled.
func (m *Module) Close(ctx context.Context) error {
	return m.consumer.Stop(ctx)
}

func newStore(db *gorm.DB) (usecase.Store, error) {
	if db == nil {
		return store.NewInMemoryStore(), nil
	}
	return store.NewSQLiteStore(db)
}

func loadThresholds(cfg pkgconfig.Config) (fraud.Thresholds, error) {
	limits := fraud.DefaultThresholds()

	for key, target := range map[string]*decimal.Decimal{
		"fraud.threshold.transaction": &limits.Transaction,
		"fraud.threshold.account":     &limits.Account,
		"fraud.threshold.agency":      &limits.Agency,
	} {
		raw := cfg.GetString(key)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return fraud.Thresholds{}, fmt.Errorf("%s: %w", key, err)
		}
		*target = value
	}

	return limits, nil
}
