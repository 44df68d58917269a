package domain

import "time"

// BalanceSnapshot is the most recently observed balance as pushed by the
// store feed, in the shape consumed by web/UI layers. Uses string fields to
// avoid float precision issues.
type BalanceSnapshot struct {
	Timestamp time.Time `json:"ts"`
	Identity  string    `json:"identity"`
	Pair      string    `json:"pair"`
	Fiat      string    `json:"fiat"`
	Coin      string    `json:"coin"`
	Price     string    `json:"price,omitempty"`
}

// NewBalanceSnapshot builds the UI-facing view of a committed balance.
func NewBalanceSnapshot(ts time.Time, identity string, pair Pair, balance Balance, price string) BalanceSnapshot {
	return BalanceSnapshot{
		Timestamp: ts,
		Identity:  identity,
		Pair:      pair.String(),
		Fiat:      balance.FiatDisplay(),
		Coin:      balance.CoinDisplay(),
		Price:     price,
	}
}
