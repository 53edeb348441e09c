package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/coldtrace/foodtrace/internal/domain/ledger"
	"github.com/coldtrace/foodtrace/internal/domain/observation"
	"github.com/coldtrace/foodtrace/internal/infra/auditor"
	"github.com/coldtrace/foodtrace/internal/infra/config"
	"github.com/coldtrace/foodtrace/internal/infra/recordcache"
)

func provideChain(cfg *config.Config, logger *slog.Logger) *ledger.Chain {
	chain := ledger.NewChain(ledger.Config{
		Difficulty:      cfg.Ledger.Difficulty,
		MaxSealAttempts: cfg.Ledger.MaxSealAttempts,
	})
	logger.Info("ledger initialized", "difficulty", chain.Difficulty(), "length", chain.Length())
	return chain
}

func provideObservationConfig(cfg *config.Config) observation.Config {
	return observation.Config{
		CacheTTL: cfg.Cache.TTL,
	}
}

func provideHistoryCache(cfg *config.Config, logger *slog.Logger) observation.HistoryCache {
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return recordcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return recordcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey history cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return recordcache.NewValkeyStore(client, "foodtrace")
		}
	}
	return recordcache.NewMemoryStore()
}

func provideAuditor(cfg *config.Config, chain *ledger.Chain, logger *slog.Logger) *auditor.Auditor {
	return auditor.New(cfg.Audit, chain, logger)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
