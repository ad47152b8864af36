package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

type Application struct {
	config            *Config
	logger            *logrus.Logger
	querySet          QuerySet
	blockList         *BlockList
	historyService    *HistoryService
	telegramService   *TelegramService
	twitterBotService *TwitterBotService
	cleanupScheduler  *CleanupScheduler
}

func NewApplication(
	config *Config,
	logger *logrus.Logger,
	querySet QuerySet,
	blockList *BlockList,
	historyService *HistoryService,
	telegramService *TelegramService,
	twitterBotService *TwitterBotService,
	cleanupScheduler *CleanupScheduler,
) (*Application, error) {
	return &Application{
		config:            config,
		logger:            logger,
		querySet:          querySet,
		blockList:         blockList,
		historyService:    historyService,
		telegramService:   telegramService,
		twitterBotService: twitterBotService,
		cleanupScheduler:  cleanupScheduler,
	}, nil
}

func (app *Application) Initialize() error {
	app.logger.WithFields(logrus.Fields{
		"handle":           app.config.TwitterHandle,
		"dry_run":          app.config.DryRun,
		"strategies":       app.config.SearchStrategies,
		"blocked_accounts": app.blockList.AccountCount(),
		"blocked_words":    app.blockList.WordCount(),
	}).Info("Configuration loaded")

	for _, strategy := range app.querySet {
		app.logger.WithFields(logrus.Fields{
			"strategy": strategy.Name,
			"type":     strategy.QueryType,
			"limit":    strategy.Limit,
			"query":    strategy.Query,
		}).Debug("Strategy configured")
	}

	app.cleanupScheduler.Start()

	shares24h, err := app.historyService.GetShareCountSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		app.logger.WithError(err).Warn("Failed to read share count for startup notification")
	}
	if err := app.telegramService.NotifyStartup(app.config.TwitterHandle, app.config.DryRun, shares24h); err != nil {
		app.logger.WithError(err).Warn("Failed to send startup notification")
	}

	return nil
}

// Run drives the share loop until SIGINT or SIGTERM cancels it.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.twitterBotService.StartSharing(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *Application) Shutdown() {
	app.logger.Info("Shutting down application...")

	app.cleanupScheduler.Stop()

	if err := app.historyService.Close(); err != nil {
		app.logger.WithError(err).Warn("Failed to close history database")
	}

	app.logger.Info("Application shutdown completed")
}
