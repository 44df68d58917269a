// Package pricer supplies the coin/fiat conversion rate.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/coindash/internal/domain"
)

// Pricer defines an interface for getting the price of a trading pair.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}
