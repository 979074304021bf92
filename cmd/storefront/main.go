package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/api"
	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/cart"
	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/config"
	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/poller"
)

// Headless storefront core: restores the cart slot and keeps the active
// order list in sync until interrupted. Screens embed the internal packages
// directly; this binary exists to run and observe the sync loop on its own.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.TelegramID == "" {
		logger.Fatal().Msg("TELEGRAM_ID is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.NewClient(cfg.APIBaseURL, cfg.TelegramID, cfg.RequestTimeout, logger)

	// The cart slot lives in Redis when configured, otherwise in a local
	// file next to the binary.
	var persister cart.Persister
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		persister = cart.NewRedisPersister(redisClient, cfg.TelegramID)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis cart slot")
	} else {
		persister = cart.NewFilePersister(cfg.CartPath)
		logger.Info().Str("path", cfg.CartPath).Msg("using file cart slot")
	}

	store := cart.NewStore(persister, logger)
	store.Restore(ctx)
	logger.Info().Int("lines", len(store.Lines())).Msg("cart restored")

	orders := poller.NewOrderPoller(client, cfg.PollInterval, cfg.ClockInterval, logger)
	go orders.Run(ctx)
	logger.Info().
		Dur("interval", cfg.PollInterval).
		Dur("window", cfg.DisplayWindow).
		Msg("order sync loop started")

	// Periodically report what a screen would render.
	go func() {
		ticker := time.NewTicker(cfg.ClockInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				displayed := orders.Displayed(time.Now(), cfg.DisplayWindow)
				event := logger.Info().Int("displayed", len(displayed))
				if err := orders.Err(); err != nil {
					event = event.Str("last_error", err.Error())
				}
				event.Msg("active orders")
			case <-ctx.Done():
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down storefront core")
	cancel()
}
