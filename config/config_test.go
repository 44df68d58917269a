package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetYaml_FullConfig(t *testing.T) {
	path := writeYaml(t, `
identity: alice
namespace: demo
pair: BTC_USD
price_mode: fixed
price: "68500"
min_withdrawal: "100"
listen_addr: ":9090"
write_timeout: 3s
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Identity)
	assert.Equal(t, "demo", cfg.Namespace)
	assert.Equal(t, "BTC", cfg.Pair.Coin)
	assert.Equal(t, "USD", cfg.Pair.Fiat)
	assert.Equal(t, PriceModeFixed, cfg.PriceMode)
	assert.True(t, cfg.Price.Equal(decimal.NewFromInt(68500)))
	assert.True(t, cfg.MinWithdrawal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

func TestGetYaml_DefaultsApplied(t *testing.T) {
	path := writeYaml(t, `
identity: alice
pair: ETH_EUR
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	assert.Equal(t, "coindash", cfg.Namespace)
	assert.Equal(t, PriceModeFixed, cfg.PriceMode)
	assert.True(t, cfg.Price.Equal(DefaultPrice))
	assert.True(t, cfg.MinWithdrawal.Equal(DefaultMinWithdrawal))
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestResolve_Validation(t *testing.T) {
	tests := []struct {
		name string
		tmp  ConfigTmp
	}{
		{name: "missing identity", tmp: ConfigTmp{Pair: "BTC_USD"}},
		{name: "broken pair", tmp: ConfigTmp{Identity: "a", Pair: "BTCUSD"}},
		{name: "empty pair side", tmp: ConfigTmp{Identity: "a", Pair: "BTC_"}},
		{name: "unknown price mode", tmp: ConfigTmp{Identity: "a", Pair: "BTC_USD", PriceMode: "oracle"}},
		{name: "zero fixed price", tmp: ConfigTmp{Identity: "a", Pair: "BTC_USD", PriceStr: "0"}},
		{name: "negative fixed price", tmp: ConfigTmp{Identity: "a", Pair: "BTC_USD", PriceStr: "-5"}},
		{name: "non-decimal price", tmp: ConfigTmp{Identity: "a", Pair: "BTC_USD", PriceStr: "abc"}},
		{name: "negative min withdrawal", tmp: ConfigTmp{Identity: "a", Pair: "BTC_USD", MinWithdrawalStr: "-1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.tmp.resolve()
			assert.Error(t, err)
		})
	}
}

func TestResolve_LiveModeSkipsPriceCheck(t *testing.T) {
	cfg, err := ConfigTmp{Identity: "a", Pair: "BTC_USDT", PriceMode: PriceModeLive}.resolve()
	require.NoError(t, err)
	assert.Equal(t, PriceModeLive, cfg.PriceMode)
}
