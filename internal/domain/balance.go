// Package domain defines core data structures used throughout the dashboard.
package domain

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Balance is the sole persisted entity: a fiat/coin amount pair owned by a
// single identity. Both amounts stay non-negative at every observable state
// transition.
type Balance struct {
	Fiat decimal.Decimal
	Coin decimal.Decimal
}

// balanceDoc is the persisted JSON shape. Uses string fields to avoid float
// precision issues.
type balanceDoc struct {
	Fiat string `json:"fiat"`
	Coin string `json:"coin"`
}

// DefaultBalance is written the first time an identity is seen.
func DefaultBalance() Balance {
	return Balance{
		Fiat: decimal.NewFromInt(1000),
		Coin: decimal.Zero,
	}
}

// NewBalance validates and constructs a balance pair.
func NewBalance(fiat, coin decimal.Decimal) (Balance, error) {
	if fiat.IsNegative() {
		return Balance{}, errors.New("fiat balance must not be negative")
	}
	if coin.IsNegative() {
		return Balance{}, errors.New("coin balance must not be negative")
	}
	return Balance{Fiat: fiat, Coin: coin}, nil
}

// MarshalJSON implements json.Marshaler.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(balanceDoc{
		Fiat: b.Fiat.String(),
		Coin: b.Coin.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var doc balanceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decode balance document")
	}

	fiat, err := decimal.NewFromString(doc.Fiat)
	if err != nil {
		return errors.Wrap(err, "decode fiat amount")
	}
	coin, err := decimal.NewFromString(doc.Coin)
	if err != nil {
		return errors.Wrap(err, "decode coin amount")
	}

	b.Fiat = fiat
	b.Coin = coin
	return nil
}

// FiatDisplay renders the fiat amount rounded to 2 fraction digits.
// Display only, internal state keeps full precision.
func (b Balance) FiatDisplay() string {
	return b.Fiat.StringFixed(2)
}

// CoinDisplay renders the coin amount rounded to 4 fraction digits.
func (b Balance) CoinDisplay() string {
	return b.Coin.StringFixed(4)
}
