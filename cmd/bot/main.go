package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korjavin/fridgechef/pkg/catalog"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/favorites"
	"github.com/korjavin/fridgechef/pkg/finder"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/pantry"
	"github.com/korjavin/fridgechef/pkg/scheduler"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/korjavin/fridgechef/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting fridgechef bot...")
	defer log.Sync()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The catalog loads once in the background while the rest starts up.
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.CatalogTimeout)
	defer cancelLoad()
	catalogReady := catalog.NewLoader(cfg.CatalogTimeout, cfg.SuggestLimit).LoadAsync(loadCtx, cfg.CatalogSource)

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	cat := <-catalogReady
	defer cat.Close()
	if cat.Fallback {
		log.Warn("Serving the built-in catalog")
	}

	sessions := state.New(cfg.SessionTTL)
	housekeeping := scheduler.New(store, sessions, time.Minute, 10*time.Minute)
	housekeeping.Start()
	defer housekeeping.Stop()

	finderService := finder.New(cat, pantry.New(store), favorites.New(store), sessions)
	handlers := telegram.NewHandlers(bot, finderService)

	log.Info("Bot is now running with %d recipes. Press CTRL-C to exit.", cat.Len())
	if err := bot.Start(ctx, handlers.Router()); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
	log.Info("Shutting down...")
}
