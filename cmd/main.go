// Command coindash runs a simulated single-user crypto-trading dashboard:
// a fiat/coin balance pair, deposit/buy/sell/withdraw actions against a
// simulated price and a live-updating web UI.
//
// Usage:
//
//	coindash --setup
//	coindash --config config.gen.yaml
//	coindash (uses CLI arguments)
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	binance "github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/coindash/config"
	"github.com/vadiminshakov/coindash/internal/services/ledger"
	"github.com/vadiminshakov/coindash/internal/services/pricer"
	"github.com/vadiminshakov/coindash/internal/services/session"
	"github.com/vadiminshakov/coindash/internal/setup"
	"github.com/vadiminshakov/coindash/internal/storage/balances"
	"github.com/vadiminshakov/coindash/internal/web"
)

func main() {
	cfg, runSetup, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if runSetup {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	store, err := balances.NewStore(cfg.Namespace)
	if err != nil {
		logger.Fatal("failed to open balance store", zap.Error(err))
	}
	defer store.Close()

	priceOracle, err := buildPricer(cfg)
	if err != nil {
		logger.Fatal("failed to build pricer", zap.Error(err))
	}

	book, err := ledger.New(cfg.MinWithdrawal)
	if err != nil {
		logger.Fatal("failed to build ledger", zap.Error(err))
	}

	sess, err := session.New(cfg.Identity, cfg.Pair, store, priceOracle, book, logger, cfg.WriteTimeout)
	if err != nil {
		logger.Fatal("failed to build trade session", zap.Error(err))
	}

	server := web.NewServer(cfg.ListenAddr, sess, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sess.Run(ctx)
	})
	g.Go(func() error {
		return server.Start(ctx)
	})

	logger.Info("coindash started",
		zap.String("identity", cfg.Identity),
		zap.String("pair", cfg.Pair.String()),
		zap.String("price_mode", cfg.PriceMode),
		zap.String("listen", cfg.ListenAddr))

	if err := g.Wait(); err != nil {
		logger.Error(err.Error())
	}
}

func buildPricer(cfg config.Config) (pricer.Pricer, error) {
	if cfg.PriceMode == config.PriceModeLive {
		// public endpoints only, no credentials needed
		return pricer.NewBinancePricer(binance.NewClient("", "")), nil
	}
	return pricer.NewFixedPricer(cfg.Price)
}
