package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TwitterBotService struct {
	engine     *ReshareEngine
	querySet   QuerySet
	telegram   *TelegramService
	history    *HistoryService
	logger     *logrus.Logger
	foundSleep time.Duration
	emptySleep time.Duration
	sleep      func(ctx context.Context, d time.Duration)
}

func NewTwitterBotService(engine *ReshareEngine, querySet QuerySet, telegramService *TelegramService, historyService *HistoryService, logger *logrus.Logger, config *Config) *TwitterBotService {
	return &TwitterBotService{
		engine:     engine,
		querySet:   querySet,
		telegram:   telegramService,
		history:    historyService,
		logger:     logger,
		foundSleep: config.FoundSleep,
		emptySleep: config.EmptySleep,
		sleep:      sleepWithContext,
	}
}

// cycleOutcome is the observable result of one pass over the strategy list.
type cycleOutcome struct {
	result        *ShareResult
	strategyIndex int
	searches      int
}

// StartSharing runs the share loop until the context is cancelled. Each cycle
// walks the strategies in priority order; a cycle with a terminal reshare
// attempt sleeps the long duration, an empty cycle the short one.
func (t *TwitterBotService) StartSharing(ctx context.Context) error {
	t.logger.WithFields(logrus.Fields{
		"strategies":  len(t.querySet),
		"found_sleep": t.foundSleep.String(),
		"empty_sleep": t.emptySleep.String(),
	}).Info("Starting share loop")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Share loop stopped")
			return ctx.Err()
		default:
		}

		outcome := t.runCycle(ctx)
		if ctx.Err() != nil {
			continue
		}

		if outcome.result != nil {
			t.logger.WithField("sleep", t.foundSleep.String()).
				Infof("Found something to share on search %d - sleeping...", outcome.strategyIndex+1)
			t.sleep(ctx, t.foundSleep)
		} else {
			t.logger.WithField("sleep", t.emptySleep.String()).
				Infof("Did %d searches but found nothing to share - sleeping...", outcome.searches)
			t.sleep(ctx, t.emptySleep)
		}
	}
}

func (t *TwitterBotService) runCycle(ctx context.Context) cycleOutcome {
	cycleID := uuid.New().String()

	for i, strategy := range t.querySet {
		if ctx.Err() != nil {
			return cycleOutcome{strategyIndex: -1, searches: i}
		}

		result, err := t.engine.ShareFirstAcceptable(ctx, strategy, cycleID)
		if err != nil {
			t.logger.WithError(err).WithFields(logrus.Fields{
				"strategy": strategy.Name,
				"cycle_id": cycleID,
			}).Error("Search failed, trying next strategy")
			continue
		}

		if result != nil {
			t.journalCycle(cycleID, CYCLE_OUTCOME_FOUND, strategy.Name, i, i+1)
			t.notifyShared(result)
			return cycleOutcome{result: result, strategyIndex: i, searches: i + 1}
		}
	}

	t.journalCycle(cycleID, CYCLE_OUTCOME_EMPTY, "", -1, len(t.querySet))
	return cycleOutcome{strategyIndex: -1, searches: len(t.querySet)}
}

func (t *TwitterBotService) journalCycle(cycleID string, outcome string, strategy string, strategyIndex int, searches int) {
	if t.history == nil {
		return
	}
	err := t.history.LogCycle(CycleLogModel{
		CycleID:       cycleID,
		Outcome:       outcome,
		Strategy:      strategy,
		StrategyIndex: strategyIndex,
		Searches:      searches,
	})
	if err != nil {
		t.logger.WithError(err).Warn("Failed to journal cycle")
	}
}

func (t *TwitterBotService) notifyShared(result *ShareResult) {
	if t.telegram == nil || result.Outcome != SHARE_OUTCOME_SHARED {
		return
	}
	if err := t.telegram.NotifyShared(result); err != nil {
		t.logger.WithError(err).Warn("Failed to send share notification")
	}
}

// sleepWithContext blocks for d or until ctx is cancelled, whichever is sooner.
func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
