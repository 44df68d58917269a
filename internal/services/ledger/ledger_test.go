package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/coindash/internal/domain"
)

func mustLedger(t *testing.T, min int64) *Ledger {
	t.Helper()
	l, err := New(decimal.NewFromInt(min))
	require.NoError(t, err)
	return l
}

func balance(fiat, coin float64) domain.Balance {
	return domain.Balance{
		Fiat: decimal.NewFromFloat(fiat),
		Coin: decimal.NewFromFloat(coin),
	}
}

func TestNew_RejectsNegativeMinimum(t *testing.T) {
	_, err := New(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestApply_Deposit(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)

	tests := []struct {
		name    string
		current domain.Balance
		amount  decimal.Decimal
		wantErr error
		want    domain.Balance
	}{
		{
			name:    "adds to fiat, coin untouched",
			current: balance(1000, 2),
			amount:  decimal.NewFromFloat(250.5),
			want:    balance(1250.5, 2),
		},
		{
			name:    "zero amount rejected",
			current: balance(1000, 0),
			amount:  decimal.Zero,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount rejected",
			current: balance(1000, 0),
			amount:  decimal.NewFromInt(-5),
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, receipt, err := l.Apply(tc.current, domain.TradeIntent{Kind: domain.IntentDeposit, Amount: tc.amount}, price)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, next.Fiat.Equal(tc.current.Fiat), "state must be unchanged on rejection")
				assert.True(t, next.Coin.Equal(tc.current.Coin))
				return
			}
			require.NoError(t, err)
			assert.True(t, next.Fiat.Equal(tc.want.Fiat), "fiat: got %s want %s", next.Fiat, tc.want.Fiat)
			assert.True(t, next.Coin.Equal(tc.want.Coin))
			assert.True(t, receipt.Fiat.Equal(tc.amount))
		})
	}
}

func TestApply_Buy(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)

	t.Run("scenario: spend half the fiat", func(t *testing.T) {
		next, receipt, err := l.Apply(balance(1000, 0), domain.TradeIntent{Kind: domain.IntentBuy, Amount: decimal.NewFromInt(500)}, price)
		require.NoError(t, err)
		assert.Equal(t, "500.00", next.FiatDisplay())
		assert.Equal(t, "0.0073", next.CoinDisplay())
		assert.True(t, receipt.Coins.Equal(decimal.NewFromInt(500).Div(price)))
	})

	t.Run("insufficient fiat rejected, state unchanged", func(t *testing.T) {
		cur := balance(50, 0)
		next, _, err := l.Apply(cur, domain.TradeIntent{Kind: domain.IntentBuy, Amount: decimal.NewFromInt(100)}, price)
		require.ErrorIs(t, err, domain.ErrInsufficientFiat)
		assert.True(t, next.Fiat.Equal(cur.Fiat))
		assert.True(t, next.Coin.Equal(cur.Coin))
	})

	t.Run("exact balance accepted at the boundary", func(t *testing.T) {
		next, _, err := l.Apply(balance(100, 0), domain.TradeIntent{Kind: domain.IntentBuy, Amount: decimal.NewFromInt(100)}, price)
		require.NoError(t, err)
		assert.True(t, next.Fiat.IsZero())
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, _, err := l.Apply(balance(1000, 0), domain.TradeIntent{Kind: domain.IntentBuy, Amount: decimal.Zero}, price)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestApply_Sell(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)

	t.Run("scenario: sell part of the coin balance", func(t *testing.T) {
		next, receipt, err := l.Apply(balance(0, 0.01), domain.TradeIntent{Kind: domain.IntentSell, Amount: decimal.NewFromInt(500)}, price)
		require.NoError(t, err)
		assert.Equal(t, "500.00", next.FiatDisplay())
		assert.Equal(t, "0.0027", next.CoinDisplay())
		assert.True(t, receipt.Fiat.Equal(decimal.NewFromInt(500)))
	})

	t.Run("insufficient coin rejected, state unchanged", func(t *testing.T) {
		cur := balance(0, 0.001)
		next, _, err := l.Apply(cur, domain.TradeIntent{Kind: domain.IntentSell, Amount: decimal.NewFromInt(500)}, price)
		require.ErrorIs(t, err, domain.ErrInsufficientCoin)
		assert.True(t, next.Coin.Equal(cur.Coin))
	})

	t.Run("exact coin balance accepted at the boundary", func(t *testing.T) {
		amount := decimal.NewFromInt(685)
		coinsNeeded := amount.Div(price)
		cur := domain.Balance{Fiat: decimal.Zero, Coin: coinsNeeded}
		next, _, err := l.Apply(cur, domain.TradeIntent{Kind: domain.IntentSell, Amount: amount}, price)
		require.NoError(t, err)
		assert.True(t, next.Coin.IsZero())
		assert.True(t, next.Fiat.Equal(amount))
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, _, err := l.Apply(balance(0, 1), domain.TradeIntent{Kind: domain.IntentSell, Amount: decimal.NewFromInt(-1)}, price)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestApply_Withdraw(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)
	withdraw := domain.TradeIntent{Kind: domain.IntentWithdraw}

	t.Run("below minimum rejected, state unchanged", func(t *testing.T) {
		cur := balance(0, 50)
		next, _, err := l.Apply(cur, withdraw, price)
		require.ErrorIs(t, err, domain.ErrBelowMinimum)
		assert.True(t, next.Coin.Equal(cur.Coin))
	})

	t.Run("at or above minimum empties the coin balance", func(t *testing.T) {
		next, receipt, err := l.Apply(balance(0, 150), withdraw, price)
		require.NoError(t, err)
		assert.True(t, next.Coin.IsZero())
		assert.True(t, next.Fiat.IsZero(), "fiat untouched by withdrawal")
		assert.True(t, receipt.Coins.Equal(decimal.NewFromInt(150)))
	})

	t.Run("supplied amount is ignored", func(t *testing.T) {
		next, _, err := l.Apply(balance(0, 150), domain.TradeIntent{Kind: domain.IntentWithdraw, Amount: decimal.NewFromInt(-42)}, price)
		require.NoError(t, err)
		assert.True(t, next.Coin.IsZero())
	})

	t.Run("idempotent rejection once empty", func(t *testing.T) {
		next, _, err := l.Apply(balance(0, 150), withdraw, price)
		require.NoError(t, err)
		_, _, err = l.Apply(next, withdraw, price)
		assert.ErrorIs(t, err, domain.ErrBelowMinimum)
	})
}

// Buying and selling the same fiat amount at an unchanged price must return
// the balance to its pre-buy value.
func TestApply_BuySellRoundTrip(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)
	start := balance(1000, 0)
	amount := decimal.NewFromInt(500)

	afterBuy, _, err := l.Apply(start, domain.TradeIntent{Kind: domain.IntentBuy, Amount: amount}, price)
	require.NoError(t, err)

	afterSell, _, err := l.Apply(afterBuy, domain.TradeIntent{Kind: domain.IntentSell, Amount: amount}, price)
	require.NoError(t, err)

	assert.True(t, afterSell.Fiat.Equal(start.Fiat), "fiat: got %s want %s", afterSell.Fiat, start.Fiat)
	assert.True(t, afterSell.Coin.Equal(start.Coin), "coin: got %s want %s", afterSell.Coin, start.Coin)
}

// Every accepted transition keeps both balances non-negative.
func TestApply_NonNegativity(t *testing.T) {
	l := mustLedger(t, 100)
	price := decimal.NewFromInt(68500)

	intents := []domain.TradeIntent{
		{Kind: domain.IntentDeposit, Amount: decimal.NewFromInt(100)},
		{Kind: domain.IntentBuy, Amount: decimal.NewFromInt(300)},
		{Kind: domain.IntentSell, Amount: decimal.NewFromInt(200)},
		{Kind: domain.IntentBuy, Amount: decimal.NewFromInt(900)},
		{Kind: domain.IntentWithdraw},
		{Kind: domain.IntentSell, Amount: decimal.NewFromInt(10000)},
	}

	cur := balance(1000, 0)
	for _, intent := range intents {
		next, _, err := l.Apply(cur, intent, price)
		if err != nil {
			continue
		}
		assert.False(t, next.Fiat.IsNegative(), "fiat went negative after %s", intent)
		assert.False(t, next.Coin.IsNegative(), "coin went negative after %s", intent)
		cur = next
	}
}
