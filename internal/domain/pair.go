package domain

import "fmt"

// Pair is the traded instrument: coin (base) against fiat (quote).
type Pair struct {
	// Coin base asset symbol, e.g. BTC.
	Coin string
	// Fiat quote currency code, e.g. USD.
	Fiat string
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.Coin, p.Fiat)
}

// Symbol returns the concatenated symbol representation used by exchange APIs.
func (p Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.Coin, p.Fiat)
}
