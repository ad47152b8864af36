package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grutapig/resharebot/twitterapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestBot(t *testing.T, api TwitterClient, querySet QuerySet) (*TwitterBotService, *[]time.Duration) {
	t.Helper()
	engine, _ := setupTestEngine(t, api, false)

	bot := NewTwitterBotService(engine, querySet, nil, nil, newTestLogger(), &Config{
		FoundSleep: 1600 * time.Second,
		EmptySleep: 600 * time.Second,
	})

	sleeps := &[]time.Duration{}
	bot.sleep = func(ctx context.Context, d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return bot, sleeps
}

func threeStrategies() QuerySet {
	return QuerySet{
		{Name: STRATEGY_DIRECT, Query: "(#foo)", QueryType: twitterapi.LATEST, Limit: RECENT_SEARCH_LIMIT},
		{Name: STRATEGY_POPULAR, Query: "(#foo)", QueryType: twitterapi.TOP, Limit: POPULAR_SEARCH_LIMIT},
		{Name: STRATEGY_INDIRECT, Query: "(#bar)", QueryType: twitterapi.LATEST, Limit: RECENT_SEARCH_LIMIT},
	}
}

func TestRunCycle(t *testing.T) {
	t.Run("first strategy wins", func(t *testing.T) {
		api := &fakeTwitterClient{pages: singlePage(testTweet("1", "alice", "#foo post"))}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		require.NotNil(t, outcome.result)

		assert.Equal(t, 0, outcome.strategyIndex)
		assert.Equal(t, 1, outcome.searches)
		// later strategies are never searched once one is terminal
		assert.Len(t, api.searchRequests, 1)
	})

	t.Run("falls through to later strategy", func(t *testing.T) {
		api := &fakeTwitterClient{pages: []twitterapi.AdvancedSearchResponse{
			{}, // direct: nothing
			{}, // popular: nothing
			{Tweets: []twitterapi.Tweet{testTweet("9", "bob", "#bar post")}},
		}}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		require.NotNil(t, outcome.result)

		assert.Equal(t, 2, outcome.strategyIndex)
		assert.Equal(t, STRATEGY_INDIRECT, outcome.result.Strategy)
		assert.Equal(t, 3, outcome.searches)
	})

	t.Run("failed reshare attempt is still terminal for the cycle", func(t *testing.T) {
		api := &fakeTwitterClient{
			pages:      singlePage(testTweet("1", "alice", "#foo post")),
			retweetErr: errors.New("error retweet tweet 1: forbidden"),
		}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		require.NotNil(t, outcome.result)

		assert.Equal(t, SHARE_OUTCOME_FAILED, outcome.result.Outcome)
		assert.Equal(t, 0, outcome.strategyIndex)
		assert.Len(t, api.searchRequests, 1)
	})

	t.Run("all strategies empty", func(t *testing.T) {
		api := &fakeTwitterClient{}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		assert.Nil(t, outcome.result)
		assert.Equal(t, 3, outcome.searches)
		assert.Len(t, api.searchRequests, 3)
	})

	t.Run("all candidates filtered", func(t *testing.T) {
		api := &fakeTwitterClient{pages: []twitterapi.AdvancedSearchResponse{
			{Tweets: []twitterapi.Tweet{testTweet("1", "spambot", "#foo")}},
			{Tweets: []twitterapi.Tweet{testTweet("2", "alice", "airdrop #foo")}},
			{Tweets: []twitterapi.Tweet{testTweet("3", "crypto_guru", "#bar")}},
		}}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		assert.Nil(t, outcome.result)
		assert.Empty(t, api.retweetCalls)
	})

	t.Run("search error skips to next strategy", func(t *testing.T) {
		calls := 0
		api := &sequencedClient{search: func(request twitterapi.AdvancedSearchRequest) (*twitterapi.AdvancedSearchResponse, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("status non 200")
			}
			return &twitterapi.AdvancedSearchResponse{
				Tweets: []twitterapi.Tweet{testTweet("5", "alice", "#foo news")},
			}, nil
		}}
		bot, _ := setupTestBot(t, api, threeStrategies())

		outcome := bot.runCycle(context.Background())
		require.NotNil(t, outcome.result)

		assert.Equal(t, 1, outcome.strategyIndex)
		assert.Equal(t, 2, calls)
	})
}

// sequencedClient lets a test script search behavior per call.
type sequencedClient struct {
	search       func(request twitterapi.AdvancedSearchRequest) (*twitterapi.AdvancedSearchResponse, error)
	retweetCalls []twitterapi.RetweetRequest
}

func (s *sequencedClient) AdvancedSearch(request twitterapi.AdvancedSearchRequest) (*twitterapi.AdvancedSearchResponse, error) {
	return s.search(request)
}

func (s *sequencedClient) Retweet(request twitterapi.RetweetRequest) (*twitterapi.RetweetResponse, error) {
	s.retweetCalls = append(s.retweetCalls, request)
	return &twitterapi.RetweetResponse{Status: "success"}, nil
}

func TestStartSharing_Backoff(t *testing.T) {
	t.Run("found cycle sleeps long", func(t *testing.T) {
		api := &fakeTwitterClient{pages: singlePage(testTweet("1", "alice", "#foo post"))}
		bot, sleeps := setupTestBot(t, api, threeStrategies())

		ctx, cancel := context.WithCancel(context.Background())
		bot.sleep = func(ctx context.Context, d time.Duration) {
			*sleeps = append(*sleeps, d)
			cancel()
		}

		err := bot.StartSharing(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		require.Len(t, *sleeps, 1)
		assert.Equal(t, 1600*time.Second, (*sleeps)[0])
	})

	t.Run("empty cycle sleeps short", func(t *testing.T) {
		api := &fakeTwitterClient{}
		bot, sleeps := setupTestBot(t, api, threeStrategies())

		ctx, cancel := context.WithCancel(context.Background())
		bot.sleep = func(ctx context.Context, d time.Duration) {
			*sleeps = append(*sleeps, d)
			cancel()
		}

		err := bot.StartSharing(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		require.Len(t, *sleeps, 1)
		assert.Equal(t, 600*time.Second, (*sleeps)[0])
	})

	t.Run("loop repeats until cancelled", func(t *testing.T) {
		api := &fakeTwitterClient{}
		bot, sleeps := setupTestBot(t, api, threeStrategies())

		ctx, cancel := context.WithCancel(context.Background())
		bot.sleep = func(ctx context.Context, d time.Duration) {
			*sleeps = append(*sleeps, d)
			if len(*sleeps) == 3 {
				cancel()
			}
		}

		err := bot.StartSharing(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, *sleeps, 3)
	})
}

func TestStartSharing_JournalsCycles(t *testing.T) {
	history := setupTestHistory(t)

	api := &fakeTwitterClient{pages: singlePage(testTweet("1", "alice", "#foo post"))}
	bot, sleeps := setupTestBot(t, api, threeStrategies())
	bot.history = history
	bot.engine.history = history

	ctx, cancel := context.WithCancel(context.Background())
	bot.sleep = func(ctx context.Context, d time.Duration) {
		*sleeps = append(*sleeps, d)
		cancel()
	}

	err := bot.StartSharing(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	stats, err := history.GetHistoryStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["cycle_logs"])
	assert.Equal(t, int64(1), stats["share_logs"])
}
