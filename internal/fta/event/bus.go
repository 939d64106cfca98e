package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is an in-process, buffered queue of import events.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.ImportRecordedEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.ImportRecordedEvent, buffer),
	}
}

// Publish blocks while the buffer is full, until ctx is done.
func (b *Bus) Publish(ctx context.Context, event entity.ImportRecordedEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.ImportRecordedEvent {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
