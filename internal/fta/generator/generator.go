// Package generator produces synthetic single-day transaction batches for
// demos and load tests.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shopspring/decimal"
)

// DefaultBanks is used when Config.Banks is empty.
var DefaultBanks = []string{
	"BANCO DO BRASIL",
	"BANCO BRADESCO",
	"BANCO SANTANDER",
	"CAIXA ECONOMICA FEDERAL",
	"NUBANK",
	"BANCO INTER",
}

const (
	DefaultSize = 50
	// one in largeEvery transactions gets an amount above the fraud threshold.
	largeEvery = 20
	// generated days fall within this many days before now.
	maxDaysBack = 365
)

type Config struct {
	Size  int
	Banks []string
	Seed  uint64
	Now   func() time.Time
}

type Generator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	size  int
	banks []string
	now   func() time.Time
}

// New builds a generator. A zero Seed seeds from the current time.
func New(cfg Config) *Generator {
	size := cfg.Size
	if size < 1 {
		size = DefaultSize
	}

	banks := cfg.Banks
	if len(banks) == 0 {
		banks = DefaultBanks
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(now().UnixNano())
	}

	return &Generator{
		rnd:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		size:  size,
		banks: banks,
		now:   now,
	}
}

// Generate returns Size transactions, all on one random past day, sorted by time.
func (g *Generator) Generate(ctx context.Context) ([]entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(g.banks) < 2 {
		return nil, errors.New("generator needs at least two banks")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	day := entity.DayOf(g.now()).AddDate(0, 0, -(1 + g.rnd.IntN(maxDaysBack)))
	offsets := make([]time.Duration, g.size)
	for i := range offsets {
		offsets[i] = time.Duration(g.rnd.IntN(24*60*60)) * time.Second
	}
	slices.Sort(offsets)

	txs := make([]entity.Transaction, 0, g.size)
	for _, offset := range offsets {
		from, to := g.pickTwo()
		txs = append(txs, entity.Transaction{
			OriginBank:         g.banks[from],
			OriginAgency:       g.agency(),
			OriginAccount:      g.account(),
			DestinationBank:    g.banks[to],
			DestinationAgency:  g.agency(),
			DestinationAccount: g.account(),
			Amount:             g.amount(),
			Date:               day.Add(offset),
		})
	}

	return txs, nil
}

func (g *Generator) pickTwo() (int, int) {
	from := g.rnd.IntN(len(g.banks))
	to := g.rnd.IntN(len(g.banks) - 1)
	if to >= from {
		to++
	}
	return from, to
}

func (g *Generator) agency() string {
	return fmt.Sprintf("%04d", 1+g.rnd.IntN(20))
}

func (g *Generator) account() string {
	return fmt.Sprintf("%05d-%d", 1+g.rnd.IntN(500), g.rnd.IntN(10))
}

func (g *Generator) amount() decimal.Decimal {
	cents := int64(1_000 + g.rnd.IntN(5_000_000))
	if g.rnd.IntN(largeEvery) == 0 {
		cents = int64(10_000_000 + g.rnd.IntN(100_000_000))
	}
	return decimal.New(cents, -2)
}
