package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IntentKind represents the type of trade action requested by the user.
type IntentKind int

const (
	IntentDeposit IntentKind = iota
	IntentBuy
	IntentSell
	IntentWithdraw
)

// kind string constants to avoid magic strings
const (
	kindStringDeposit  = "deposit"
	kindStringBuy      = "buy"
	kindStringSell     = "sell"
	kindStringWithdraw = "withdraw"
)

// String returns the string representation of the kind.
func (k IntentKind) String() string {
	switch k {
	case IntentDeposit:
		return kindStringDeposit
	case IntentBuy:
		return kindStringBuy
	case IntentSell:
		return kindStringSell
	case IntentWithdraw:
		return kindStringWithdraw
	default:
		return "unknown"
	}
}

// ParseIntentKind converts a string (e.g. from the HTTP API) into a kind.
func ParseIntentKind(s string) (IntentKind, error) {
	switch s {
	case kindStringDeposit:
		return IntentDeposit, nil
	case kindStringBuy:
		return IntentBuy, nil
	case kindStringSell:
		return IntentSell, nil
	case kindStringWithdraw:
		return IntentWithdraw, nil
	}
	return 0, fmt.Errorf("unknown intent kind: %q", s)
}

// TradeIntent is a user-requested trade action. Amount is denominated in
// fiat for deposit/buy/sell and ignored for withdraw (withdrawal is always
// all-or-nothing of the current coin balance). Constructed from UI input,
// consumed once, discarded.
type TradeIntent struct {
	Kind   IntentKind
	Amount decimal.Decimal
}

// String returns a human-readable representation.
func (t TradeIntent) String() string {
	if t.Kind == IntentWithdraw {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s amount: %s", t.Kind.String(), t.Amount.String())
}
