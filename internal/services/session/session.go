// Package session bridges UI-issued trade intents to committed balance
// changes: it validates against the last pushed snapshot, applies the
// ledger and writes the result back to the store.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coindash/internal/domain"
	"github.com/vadiminshakov/coindash/internal/services/ledger"
	"github.com/vadiminshakov/coindash/internal/services/pricer"
	"github.com/vadiminshakov/coindash/pkg/retrier"
)

const defaultWriteTimeout = 5 * time.Second

// Storage is the balance store contract the session consumes: point read,
// full-replace point write and a push feed of committed snapshots.
type Storage interface {
	Read(identity string) (domain.Balance, bool, error)
	Write(identity string, balance domain.Balance) error
	Subscribe(identity string) chan domain.Balance
	Unsubscribe(ch chan domain.Balance)
}

// Session executes trade intents for a single resolved identity. One intent
// is in flight at a time; the busy flag is advisory, not a store lock.
type Session struct {
	identity     string
	pair         domain.Pair
	store        Storage
	pricer       pricer.Pricer
	ledger       *ledger.Ledger
	logger       *zap.Logger
	writeTimeout time.Duration

	busy      atomic.Bool
	listening atomic.Bool

	mu       sync.RWMutex
	snapshot domain.Balance
	primed   bool
}

// New creates a trade session. Identity must already be resolved, the
// session performs no authentication.
func New(identity string, pair domain.Pair, store Storage, priceOracle pricer.Pricer, l *ledger.Ledger, logger *zap.Logger, writeTimeout time.Duration) (*Session, error) {
	if identity == "" {
		return nil, errors.New("identity is required")
	}
	if store == nil {
		return nil, errors.New("storage is required")
	}
	if priceOracle == nil {
		return nil, errors.New("pricer is required")
	}
	if l == nil {
		return nil, errors.New("ledger is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return &Session{
		identity:     identity,
		pair:         pair,
		store:        store,
		pricer:       priceOracle,
		ledger:       l,
		logger:       logger,
		writeTimeout: writeTimeout,
	}, nil
}

// Run subscribes to the store feed and keeps the local snapshot current
// until ctx is cancelled. A broken feed is resubscribed with exponential
// backoff; while disconnected the UI status reports degraded.
func (s *Session) Run(ctx context.Context) error {
	r := retrier.New(
		retrier.WithInitialInterval(500*time.Millisecond),
		retrier.WithMaxInterval(15*time.Second),
		retrier.WithMaxAttempts(0),
	)

	return r.Do(ctx, func(ctx context.Context) error {
		if err := s.listen(ctx); err != nil {
			s.logger.Warn("balance feed interrupted, resubscribing",
				zap.String("identity", s.identity),
				zap.Error(err))
			return err
		}
		return nil
	})
}

// listen consumes the feed until ctx is done (returns nil) or the feed
// closes underneath us (returns ErrStoreListen so Run resubscribes).
func (s *Session) listen(ctx context.Context) error {
	ch := s.store.Subscribe(s.identity)
	defer s.store.Unsubscribe(ch)

	if err := s.prime(); err != nil {
		return err
	}

	s.listening.Store(true)
	defer s.listening.Store(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case balance, ok := <-ch:
			if !ok {
				return domain.ErrStoreListen
			}
			s.setSnapshot(balance)
		}
	}
}

// prime loads the current document, writing the default balance exactly
// once when the identity has never been seen. Best effort: a race with
// another initializer resolves as last-write-wins.
func (s *Session) prime() error {
	balance, found, err := s.store.Read(s.identity)
	if err != nil {
		return errors.Wrap(err, "prime balance snapshot")
	}

	if !found {
		balance = domain.DefaultBalance()
		if err := s.store.Write(s.identity, balance); err != nil {
			return errors.Wrap(err, "initialize default balance")
		}
		s.logger.Info("initialized default balance",
			zap.String("identity", s.identity),
			zap.String("fiat", balance.Fiat.String()))
	}

	s.setSnapshot(balance)
	return nil
}

// Execute runs one intent end to end and reports the outcome in the
// uniform UI shape. Rejections never touch the store.
func (s *Session) Execute(ctx context.Context, intent domain.TradeIntent) domain.Result {
	if !s.Ready() {
		return failure(domain.ErrNotReady)
	}

	if !s.busy.CompareAndSwap(false, true) {
		return failure(domain.ErrBusy)
	}
	defer s.busy.Store(false)

	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		s.logger.Error("price lookup failed", zap.Error(err))
		return domain.Result{Success: false, Message: "Current price is unavailable. Try again."}
	}

	current := s.Snapshot()
	next, receipt, err := s.ledger.Apply(current, intent, price)
	if err != nil {
		return failure(err)
	}

	// Advance the local snapshot before the write lands. On write failure
	// it stays stale until the next push notification corrects it; the
	// feed, not the write acknowledgment, is the source of truth.
	s.setSnapshot(next)

	if err := s.persist(ctx, next); err != nil {
		s.logger.Error("balance write failed",
			zap.String("identity", s.identity),
			zap.String("intent", intent.String()),
			zap.Error(err))
		return failure(err)
	}

	s.logger.Info("trade committed",
		zap.String("identity", s.identity),
		zap.String("intent", intent.String()),
		zap.String("fiat", next.Fiat.String()),
		zap.String("coin", next.Coin.String()))

	return domain.Result{Success: true, Message: s.successMessage(receipt)}
}

// persist issues the full-document write, bounded so a hung store cannot
// leave the session busy forever.
func (s *Session) persist(ctx context.Context, next domain.Balance) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.store.Write(s.identity, next)
	}()

	select {
	case err := <-done:
		if err != nil {
			return domain.ErrPersistence
		}
		return nil
	case <-ctx.Done():
		return domain.ErrTimeout
	}
}

// Snapshot returns the last pushed balance.
func (s *Session) Snapshot() domain.Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Ready reports whether the session has a primed snapshot to trade against.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primed
}

// Listening reports whether the store feed is currently connected.
func (s *Session) Listening() bool {
	return s.listening.Load()
}

// Identity returns the session owner.
func (s *Session) Identity() string {
	return s.identity
}

// Pair returns the traded instrument.
func (s *Session) Pair() domain.Pair {
	return s.pair
}

func (s *Session) setSnapshot(balance domain.Balance) {
	s.mu.Lock()
	s.snapshot = balance
	s.primed = true
	s.mu.Unlock()
}

func (s *Session) successMessage(receipt ledger.Receipt) string {
	switch receipt.Kind {
	case domain.IntentDeposit:
		return fmt.Sprintf("Deposited %s %s.", receipt.Fiat.StringFixed(2), s.pair.Fiat)
	case domain.IntentBuy:
		return fmt.Sprintf("Bought %s %s for %s %s.",
			receipt.Coins.StringFixed(4), s.pair.Coin,
			receipt.Fiat.StringFixed(2), s.pair.Fiat)
	case domain.IntentSell:
		return fmt.Sprintf("Sold %s %s for %s %s.",
			receipt.Coins.StringFixed(4), s.pair.Coin,
			receipt.Fiat.StringFixed(2), s.pair.Fiat)
	case domain.IntentWithdraw:
		return fmt.Sprintf("Withdrew %s %s.", receipt.Coins.StringFixed(4), s.pair.Coin)
	default:
		return "Done."
	}
}

func failure(err error) domain.Result {
	return domain.Result{Success: false, Message: userMessage(err)}
}

// userMessage maps rejection reasons to the texts the UI shows. Unknown
// errors fall back to the generic persistence message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Enter a valid amount greater than zero."
	case errors.Is(err, domain.ErrInsufficientFiat):
		return "Not enough fiat balance for this purchase."
	case errors.Is(err, domain.ErrInsufficientCoin):
		return "Not enough coin balance for this sale."
	case errors.Is(err, domain.ErrBelowMinimum):
		return "Balance is below the withdrawal minimum."
	case errors.Is(err, domain.ErrNotReady):
		return "Session is not ready yet. Wait for the balance to load."
	case errors.Is(err, domain.ErrBusy):
		return "Another trade is still in progress."
	case errors.Is(err, domain.ErrTimeout):
		return "Saving your balance timed out. It may not have been stored."
	case errors.Is(err, domain.ErrStoreListen):
		return "Connection to the balance store was lost."
	default:
		return "Something went wrong while saving your balance."
	}
}
