// Package config loads dashboard configuration from a yaml file or CLI
// flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/coindash/internal/domain"
)

// Price modes.
const (
	PriceModeFixed = "fixed"
	PriceModeLive  = "live"
)

// Defaults.
var (
	DefaultPrice         = decimal.NewFromInt(68500)
	DefaultMinWithdrawal = decimal.NewFromInt(100)
)

// Config is the resolved dashboard configuration.
type Config struct {
	Identity      string
	Namespace     string
	Pair          domain.Pair
	PriceMode     string
	Price         decimal.Decimal
	MinWithdrawal decimal.Decimal
	ListenAddr    string
	WriteTimeout  time.Duration
}

// ConfigTmp is the yaml shape; decimals arrive as strings.
type ConfigTmp struct {
	Identity         string        `yaml:"identity"`
	Namespace        string        `yaml:"namespace,omitempty"`
	Pair             string        `yaml:"pair"`
	PriceMode        string        `yaml:"price_mode,omitempty"`
	PriceStr         string        `yaml:"price,omitempty"`
	MinWithdrawalStr string        `yaml:"min_withdrawal,omitempty"`
	ListenAddr       string        `yaml:"listen_addr,omitempty"`
	WriteTimeout     time.Duration `yaml:"write_timeout,omitempty"`
}

// Get resolves configuration: --config selects a yaml file, otherwise CLI
// flags with defaults apply. The returned Setup flag asks the caller to run
// the interactive wizard instead.
func Get() (Config, bool, error) {
	configPath := flag.String("config", "", "path to yaml config")
	setup := flag.Bool("setup", false, "run the interactive configuration wizard")
	identity := flag.String("identity", "local", "resolved user identity the balance belongs to")
	namespace := flag.String("namespace", "coindash", "store namespace")
	pairFlag := flag.String("pair", "BTC_USD", "trade pair, example: BTC_USD")
	priceMode := flag.String("pricemode", PriceModeFixed, "price mode: fixed or live")
	price := flag.String("price", DefaultPrice.String(), "simulated coin price in fiat (fixed mode)")
	minWithdrawal := flag.String("minwithdrawal", DefaultMinWithdrawal.String(), "minimum balance required to withdraw")
	listenAddr := flag.String("listen", ":8080", "dashboard listen address")
	writeTimeout := flag.Duration("writetimeout", 5*time.Second, "balance write timeout")
	flag.Parse()

	if *setup {
		return Config{}, true, nil
	}

	if *configPath != "" {
		cfg, err := getYaml(*configPath)
		return cfg, false, err
	}

	tmp := ConfigTmp{
		Identity:         *identity,
		Namespace:        *namespace,
		Pair:             *pairFlag,
		PriceMode:        *priceMode,
		PriceStr:         *price,
		MinWithdrawalStr: *minWithdrawal,
		ListenAddr:       *listenAddr,
		WriteTimeout:     *writeTimeout,
	}
	cfg, err := tmp.resolve()
	return cfg, false, err
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}
	return tmp.resolve()
}

func (c ConfigTmp) resolve() (Config, error) {
	if c.Identity == "" {
		return Config{}, fmt.Errorf("'identity' param is required")
	}

	pair, err := pairFromString(c.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param: %s, error: %w", c.Pair, err)
	}

	mode := c.PriceMode
	if mode == "" {
		mode = PriceModeFixed
	}
	if mode != PriceModeFixed && mode != PriceModeLive {
		return Config{}, fmt.Errorf("incorrect 'price_mode' param: %s (want fixed or live)", c.PriceMode)
	}

	price := DefaultPrice
	if c.PriceStr != "" {
		price, err = decimal.NewFromString(c.PriceStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'price' param (must be a decimal), error: %w", err)
		}
	}
	if mode == PriceModeFixed && price.LessThanOrEqual(decimal.Zero) {
		return Config{}, fmt.Errorf("'price' param must be positive, got %s", price.String())
	}

	minWithdrawal := DefaultMinWithdrawal
	if c.MinWithdrawalStr != "" {
		minWithdrawal, err = decimal.NewFromString(c.MinWithdrawalStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'min_withdrawal' param (must be a decimal), error: %w", err)
		}
	}
	if minWithdrawal.IsNegative() {
		return Config{}, fmt.Errorf("'min_withdrawal' param must not be negative, got %s", minWithdrawal.String())
	}

	namespace := c.Namespace
	if namespace == "" {
		namespace = "coindash"
	}

	listenAddr := c.ListenAddr
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	writeTimeout := c.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	return Config{
		Identity:      c.Identity,
		Namespace:     namespace,
		Pair:          pair,
		PriceMode:     mode,
		Price:         price,
		MinWithdrawal: minWithdrawal,
		ListenAddr:    listenAddr,
		WriteTimeout:  writeTimeout,
	}, nil
}

func pairFromString(pairStr string) (domain.Pair, error) {
	pairElements := strings.Split(pairStr, "_")
	if len(pairElements) != 2 || pairElements[0] == "" || pairElements[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair param")
	}
	return domain.Pair{Coin: pairElements[0], Fiat: pairElements[1]}, nil
}
