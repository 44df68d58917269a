// Package ledger holds the pure trade arithmetic: given a balance, an
// intent and a price it produces the next balance or a rejection. No I/O,
// no hidden state.
package ledger

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/coindash/internal/domain"
)

// Receipt carries the quantities computed for an accepted intent so the
// caller can build kind-specific success messages.
type Receipt struct {
	Kind domain.IntentKind
	// Fiat is the fiat side of the trade: amount deposited, spent on a buy
	// or received from a sell. Zero for withdraw.
	Fiat decimal.Decimal
	// Coins is the coin side: coins received on a buy, sold on a sell or
	// withdrawn. Zero for deposit.
	Coins decimal.Decimal
}

// Ledger applies trade intents to balances. Each call is a stateless pure
// transform; the caller owns all sequencing.
type Ledger struct {
	minWithdrawal decimal.Decimal
}

// New creates a ledger with the given withdrawal minimum. The minimum is
// compared against the coin balance, not its fiat value.
func New(minWithdrawal decimal.Decimal) (*Ledger, error) {
	if minWithdrawal.IsNegative() {
		return nil, errors.New("withdrawal minimum must not be negative")
	}
	return &Ledger{minWithdrawal: minWithdrawal}, nil
}

// Apply computes the next balance for the intent at the given price.
// Rejections come back as domain sentinel errors with the balance
// unchanged. Price is assumed positive; a non-positive price is a
// configuration error caught before the ledger is built.
func (l *Ledger) Apply(current domain.Balance, intent domain.TradeIntent, price decimal.Decimal) (domain.Balance, Receipt, error) {
	switch intent.Kind {
	case domain.IntentDeposit:
		return l.deposit(current, intent.Amount)
	case domain.IntentBuy:
		return l.buy(current, intent.Amount, price)
	case domain.IntentSell:
		return l.sell(current, intent.Amount, price)
	case domain.IntentWithdraw:
		return l.withdraw(current)
	default:
		return current, Receipt{}, errors.Errorf("unknown intent kind: %s", intent.Kind)
	}
}

func (l *Ledger) deposit(current domain.Balance, amount decimal.Decimal) (domain.Balance, Receipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return current, Receipt{}, domain.ErrInvalidAmount
	}

	next := domain.Balance{
		Fiat: current.Fiat.Add(amount),
		Coin: current.Coin,
	}
	return next, Receipt{Kind: domain.IntentDeposit, Fiat: amount}, nil
}

// buy spends the given fiat amount on coins at the current price.
func (l *Ledger) buy(current domain.Balance, amount, price decimal.Decimal) (domain.Balance, Receipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return current, Receipt{}, domain.ErrInvalidAmount
	}
	if current.Fiat.LessThan(amount) {
		return current, Receipt{}, domain.ErrInsufficientFiat
	}

	coinsReceived := amount.Div(price)
	next := domain.Balance{
		Fiat: current.Fiat.Sub(amount),
		Coin: current.Coin.Add(coinsReceived),
	}
	return next, Receipt{Kind: domain.IntentBuy, Fiat: amount, Coins: coinsReceived}, nil
}

// sell converts coins back into the given fiat amount at the current price.
func (l *Ledger) sell(current domain.Balance, amount, price decimal.Decimal) (domain.Balance, Receipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return current, Receipt{}, domain.ErrInvalidAmount
	}

	coinsToSell := amount.Div(price)
	if current.Coin.LessThan(coinsToSell) {
		return current, Receipt{}, domain.ErrInsufficientCoin
	}

	next := domain.Balance{
		Fiat: current.Fiat.Add(amount),
		Coin: current.Coin.Sub(coinsToSell),
	}
	return next, Receipt{Kind: domain.IntentSell, Fiat: amount, Coins: coinsToSell}, nil
}

// withdraw moves the entire coin balance out. There is no partial
// withdrawal path: either the whole balance leaves or the intent is
// rejected against the minimum.
func (l *Ledger) withdraw(current domain.Balance) (domain.Balance, Receipt, error) {
	if current.Coin.LessThan(l.minWithdrawal) {
		return current, Receipt{}, domain.ErrBelowMinimum
	}

	next := domain.Balance{
		Fiat: current.Fiat,
		Coin: decimal.Zero,
	}
	return next, Receipt{Kind: domain.IntentWithdraw, Coins: current.Coin}, nil
}
