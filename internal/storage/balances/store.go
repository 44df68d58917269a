// Package balances persists one balance document per identity and pushes
// committed snapshots to subscribers.
package balances

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/coindash/internal/domain"
)

const defaultStateDir = "./state/balances"

func getStateDir() string {
	if stateDir := os.Getenv("COINDASH_STATE_DIR"); stateDir != "" {
		return stateDir
	}
	return defaultStateDir
}

// Store is a keyed document store: one JSON balance document per
// (namespace, identity). Writes are full replaces, committed atomically via
// temp file and rename, and published to the change feed in commit order.
type Store struct {
	mu     sync.Mutex
	dir    string
	feed   *Feed
	closed bool
}

// NewStore creates a balance store rooted at the state dir under the given
// namespace.
func NewStore(namespace string) (*Store, error) {
	dir := filepath.Join(getStateDir(), sanitizeKey(namespace))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create balance state dir")
	}

	return &Store{
		dir:  dir,
		feed: NewFeed(defaultFeedBuffer),
	}, nil
}

// Read loads the balance document for the identity. The second return is
// false when no document exists yet.
func (s *Store) Read(identity string) (domain.Balance, bool, error) {
	payload, err := os.ReadFile(s.docPath(identity))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Balance{}, false, nil
		}
		return domain.Balance{}, false, errors.Wrap(err, "read balance document")
	}

	if len(payload) == 0 {
		return domain.Balance{}, false, nil
	}

	var balance domain.Balance
	if err := json.Unmarshal(payload, &balance); err != nil {
		return domain.Balance{}, false, errors.Wrap(err, "decode balance document")
	}

	return balance, true, nil
}

// Write replaces the identity's balance document and publishes the
// committed snapshot to subscribers. The write-then-publish section is
// serialized so the feed observes snapshots in commit order.
func (s *Store) Write(identity string, balance domain.Balance) error {
	payload, err := json.MarshalIndent(balance, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode balance document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("balance store is closed")
	}

	path := s.docPath(identity)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return errors.Wrap(err, "write balance document temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "persist balance document")
	}

	s.feed.Publish(identity, balance)
	return nil
}

// Subscribe returns a channel delivering committed balances for the
// identity until Unsubscribe is called.
func (s *Store) Subscribe(identity string) chan domain.Balance {
	return s.feed.Subscribe(identity)
}

// Unsubscribe removes the channel and closes it.
func (s *Store) Unsubscribe(ch chan domain.Balance) {
	s.feed.Unsubscribe(ch)
}

// Close shuts the feed down and rejects further writes.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.feed.Close()
}

func (s *Store) docPath(identity string) string {
	name := sanitizeKey(identity)
	if name == "" {
		name = "default"
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", name))
}

func sanitizeKey(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return ""
	}

	var b strings.Builder

	prevUnderscore := false

	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)

			prevUnderscore = false

			continue
		}

		if !prevUnderscore {
			b.WriteByte('_')

			prevUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}
