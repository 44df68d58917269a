package domain

import "errors"

// Rejection reasons returned as plain sentinel values so callers can match
// them with errors.Is and turn them into user messages without unwinding.
var (
	// ErrInvalidAmount rejects an intent whose amount is zero, negative or
	// not a valid number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFiat rejects a buy that spends more fiat than held.
	ErrInsufficientFiat = errors.New("insufficient fiat balance")

	// ErrInsufficientCoin rejects a sell of more coins than held.
	ErrInsufficientCoin = errors.New("insufficient coin balance")

	// ErrBelowMinimum rejects a withdrawal below the configured minimum.
	ErrBelowMinimum = errors.New("balance below withdrawal minimum")

	// ErrNotReady means identity or store is unavailable; no store access
	// was attempted.
	ErrNotReady = errors.New("session not ready")

	// ErrBusy means another intent from the same identity is in flight.
	ErrBusy = errors.New("another trade is in progress")

	// ErrPersistence means the store write did not complete.
	ErrPersistence = errors.New("balance write failed")

	// ErrTimeout means the store write did not complete in time.
	ErrTimeout = errors.New("balance write timed out")

	// ErrStoreListen means the balance change feed is broken.
	ErrStoreListen = errors.New("balance feed unavailable")
)
