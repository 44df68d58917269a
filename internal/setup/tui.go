// Package setup provides the interactive terminal configuration wizard.
package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/coindash/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

const generatedConfigFile = "config.gen.yaml"

// RunTUI launches the terminal configuration wizard and writes the result
// to config.gen.yaml.
func RunTUI() error {
	var (
		identity         string
		pair             string
		priceMode        string
		priceStr         string
		minWithdrawalStr string
		listenAddr       string
		confirm          bool
	)

	// defaults
	identity = "local"
	pair = "BTC_USD"
	priceStr = config.DefaultPrice.String()
	minWithdrawalStr = config.DefaultMinWithdrawal.String()
	listenAddr = ":8080"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("COINDASH CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Set up your simulated trading dashboard.\n"))

	fmt.Println(stepStyle.Render("STEP 1: IDENTITY"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User Identity").
				Description("The balance document belongs to this identity").
				Value(&identity).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("identity cannot be empty")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("COINDASH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Must contain underscore (e.g. BTC_USD)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !containsUnderscore(s) {
						return fmt.Errorf("invalid format: must be COIN_FIAT (e.g. BTC_USD)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("COINDASH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: PRICE"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Price Source").
				Options(
					huh.NewOption("Fixed simulated price", config.PriceModeFixed),
					huh.NewOption("Live price from Binance", config.PriceModeLive),
				).
				Value(&priceMode),
			huh.NewInput().
				Title("Fixed Price").
				Description("Coin price in fiat, used in fixed mode").
				Value(&priceStr).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(s)
					if err != nil {
						return fmt.Errorf("must be a decimal")
					}
					if d.LessThanOrEqual(decimal.Zero) {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("COINDASH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: LIMITS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Withdrawal Minimum").
				Description("Coin balance required before a withdrawal is allowed").
				Value(&minWithdrawalStr).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(s)
					if err != nil {
						return fmt.Errorf("must be a decimal")
					}
					if d.IsNegative() {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Listen Address").
				Description("Dashboard HTTP address (e.g. :8080)").
				Value(&listenAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("COINDASH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Identity: %s\nPair: %s\nPrice mode: %s\nFixed price: %s\nWithdrawal min: %s\nListen: %s\n",
		identity, pair, priceMode, priceStr, minWithdrawalStr, listenAddr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	cfgTmp := config.ConfigTmp{
		Identity:         identity,
		Pair:             pair,
		PriceMode:        priceMode,
		PriceStr:         priceStr,
		MinWithdrawalStr: minWithdrawalStr,
		ListenAddr:       listenAddr,
		WriteTimeout:     5 * time.Second,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(generatedConfigFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(stepStyle.Render(fmt.Sprintf("Saved %s. Start with: coindash --config %s", generatedConfigFile, generatedConfigFile)))
	return nil
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}
