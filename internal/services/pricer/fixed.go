package pricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/coindash/internal/domain"
)

// FixedPricer returns a constant simulated rate for every pair. This is the
// default mode of the dashboard.
type FixedPricer struct {
	price decimal.Decimal
}

// NewFixedPricer creates a fixed pricer. A non-positive rate is a
// configuration error, not something downstream code handles.
func NewFixedPricer(price decimal.Decimal) (*FixedPricer, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("price must be positive, got %s", price.String())
	}
	return &FixedPricer{price: price}, nil
}

// GetPrice returns the configured rate.
func (p *FixedPricer) GetPrice(_ context.Context, _ domain.Pair) (decimal.Decimal, error) {
	return p.price, nil
}
