package balances

import (
	"sync"

	"github.com/vadiminshakov/coindash/internal/domain"
)

const defaultFeedBuffer = 64

// Feed fans out committed balance snapshots to per-identity subscribers via
// buffered channels.
type Feed struct {
	mu     sync.RWMutex
	subs   map[string]map[chan domain.Balance]struct{}
	owners map[chan domain.Balance]string
	buffer int
	closed bool
}

// NewFeed creates a feed with the given per-subscriber buffer.
func NewFeed(buffer int) *Feed {
	if buffer < 1 {
		buffer = defaultFeedBuffer
	}
	return &Feed{
		subs:   make(map[string]map[chan domain.Balance]struct{}),
		owners: make(map[chan domain.Balance]string),
		buffer: buffer,
	}
}

// Publish sends the snapshot to the identity's subscribers, dropping if a
// reader is slow.
func (f *Feed) Publish(identity string, balance domain.Balance) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return
	}
	for ch := range f.subs[identity] {
		select {
		case ch <- balance:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel that receives snapshots for the identity
// until Unsubscribe is called. A closed feed returns an already-closed
// channel so readers terminate instead of blocking.
func (f *Feed) Subscribe(identity string) chan domain.Balance {
	ch := make(chan domain.Balance, f.buffer)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return ch
	}
	if f.subs[identity] == nil {
		f.subs[identity] = make(map[chan domain.Balance]struct{})
	}
	f.subs[identity][ch] = struct{}{}
	f.owners[ch] = identity
	return ch
}

// Unsubscribe removes the channel and closes it.
func (f *Feed) Unsubscribe(ch chan domain.Balance) {
	f.mu.Lock()
	defer f.mu.Unlock()
	identity, ok := f.owners[ch]
	if !ok {
		return
	}
	delete(f.owners, ch)
	delete(f.subs[identity], ch)
	if len(f.subs[identity]) == 0 {
		delete(f.subs, identity)
	}
	close(ch)
}

// Close closes all subscriber channels and stops further publishes.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for ch := range f.owners {
		close(ch)
	}
	f.subs = make(map[string]map[chan domain.Balance]struct{})
	f.owners = make(map[chan domain.Balance]string)
}
