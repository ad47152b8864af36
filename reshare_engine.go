package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grutapig/resharebot/twitterapi"
	"github.com/sirupsen/logrus"
)

// TwitterClient is the platform capability the engine needs: search plus reshare.
type TwitterClient interface {
	AdvancedSearch(request twitterapi.AdvancedSearchRequest) (*twitterapi.AdvancedSearchResponse, error)
	Retweet(request twitterapi.RetweetRequest) (*twitterapi.RetweetResponse, error)
}

// ShareResult describes the terminal attempt of one strategy run. A strategy
// whose candidates were all filtered out (or empty) produces no result.
type ShareResult struct {
	Tweet    twitterapi.Tweet
	Outcome  string
	Strategy string
}

type ReshareEngine struct {
	api       TwitterClient
	blockList *BlockList
	history   *HistoryService
	logger    *logrus.Logger
	lang      string
	dryRun    bool
	retryWait time.Duration
	sleep     func(ctx context.Context, d time.Duration)
}

func NewReshareEngine(api TwitterClient, blockList *BlockList, historyService *HistoryService, logger *logrus.Logger, config *Config) *ReshareEngine {
	return &ReshareEngine{
		api:       api,
		blockList: blockList,
		history:   historyService,
		logger:    logger,
		lang:      config.SearchLang,
		dryRun:    config.DryRun,
		retryWait: config.RetrySleep,
		sleep:     sleepWithContext,
	}
}

// ShareFirstAcceptable runs one strategy: search, walk the candidates in order
// and reshare the first one that passes both block lists. The first candidate
// that reaches a reshare attempt is terminal for this strategy whatever the
// attempt's outcome, so no candidate is ever retried within a cycle.
func (e *ReshareEngine) ShareFirstAcceptable(ctx context.Context, strategy SearchStrategy, cycleID string) (*ShareResult, error) {
	tweets, err := e.searchCandidates(strategy)
	if err != nil {
		return nil, fmt.Errorf("error search %s strategy: %w", strategy.Name, err)
	}

	for _, tweet := range tweets {
		if e.blockList.IsBlockedAccount(tweet.Author.UserName) {
			e.logger.WithFields(logrus.Fields{
				"username": tweet.Author.UserName,
				"tweet_id": tweet.Id,
				"strategy": strategy.Name,
				"cycle_id": cycleID,
			}).Info("Avoiding blocked account")
			e.journalSkip(tweet, strategy, SHARE_OUTCOME_BLOCKED_ACCOUNT, "", cycleID)
			continue
		}

		if word, found := e.blockList.MatchBlockedWord(tweet.Text); found {
			e.logger.WithFields(logrus.Fields{
				"username":     tweet.Author.UserName,
				"tweet_id":     tweet.Id,
				"blocked_word": word,
				"strategy":     strategy.Name,
				"cycle_id":     cycleID,
			}).Info("Blocked word found in tweet")
			e.journalSkip(tweet, strategy, SHARE_OUTCOME_BLOCKED_WORD, word, cycleID)
			continue
		}

		outcome := e.attemptReshare(ctx, tweet, strategy)
		e.journalShare(tweet, strategy, outcome, cycleID)
		return &ShareResult{Tweet: tweet, Outcome: outcome, Strategy: strategy.Name}, nil
	}

	return nil, nil
}

// searchCandidates pages through search results for the strategy until its
// bounded limit is reached. No caching between calls.
func (e *ReshareEngine) searchCandidates(strategy SearchStrategy) ([]twitterapi.Tweet, error) {
	tweets := []twitterapi.Tweet{}
	cursor := ""

	for len(tweets) < strategy.Limit {
		response, err := e.api.AdvancedSearch(twitterapi.AdvancedSearchRequest{
			Query:     strategy.Query,
			QueryType: strategy.QueryType,
			Lang:      e.lang,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, err
		}

		tweets = append(tweets, response.Tweets...)
		if !response.HasNextPage || response.NextCursor == "" || len(response.Tweets) == 0 {
			break
		}
		cursor = response.NextCursor
	}

	if len(tweets) > strategy.Limit {
		tweets = tweets[:strategy.Limit]
	}
	return tweets, nil
}

func (e *ReshareEngine) attemptReshare(ctx context.Context, tweet twitterapi.Tweet, strategy SearchStrategy) string {
	logger := e.logger.WithFields(logrus.Fields{
		"username": tweet.Author.UserName,
		"tweet_id": tweet.Id,
		"text":     tweet.Text,
		"length":   len(tweet.Text),
		"strategy": strategy.Name,
	})

	if e.dryRun {
		logger.Info("Dry run - not retweeting")
		return SHARE_OUTCOME_DRY_RUN
	}

	_, err := e.api.Retweet(twitterapi.RetweetRequest{TweetID: tweet.Id})
	if err != nil {
		logger.WithError(err).Error("Retweet error")
		if errors.Is(err, twitterapi.ErrSendRequest) {
			logger.WithField("wait", e.retryWait.String()).Warn("Transient transport failure, waiting before abandoning this attempt")
			e.sleep(ctx, e.retryWait)
		}
		return SHARE_OUTCOME_FAILED
	}

	logger.Info("Retweeted")
	return SHARE_OUTCOME_SHARED
}

func (e *ReshareEngine) journalSkip(tweet twitterapi.Tweet, strategy SearchStrategy, reason string, word string, cycleID string) {
	if e.history == nil {
		return
	}
	err := e.history.LogSkip(SkipLogModel{
		CycleID:     cycleID,
		TweetID:     tweet.Id,
		Author:      tweet.Author.UserName,
		Text:        tweet.Text,
		Strategy:    strategy.Name,
		Reason:      reason,
		BlockedWord: word,
	})
	if err != nil {
		e.logger.WithError(err).Warn("Failed to journal skipped tweet")
	}
}

func (e *ReshareEngine) journalShare(tweet twitterapi.Tweet, strategy SearchStrategy, outcome string, cycleID string) {
	if e.history == nil {
		return
	}
	err := e.history.LogShare(ShareLogModel{
		CycleID:  cycleID,
		TweetID:  tweet.Id,
		Author:   tweet.Author.UserName,
		Text:     tweet.Text,
		Strategy: strategy.Name,
		Outcome:  outcome,
		DryRun:   e.dryRun,
	})
	if err != nil {
		e.logger.WithError(err).Warn("Failed to journal share attempt")
	}
}
