package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearBotEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		ENV_TWITTER_HANDLE, ENV_TWITTER_SECRET_FILE, ENV_TWITTER_NEVER_SHARE_ACCOUNTS_FILE,
		ENV_TWITTER_NEVER_SHARE_WORDS_FILE, ENV_TWITTER_DIRECT_QUERY_FILE,
		ENV_TWITTER_INDIRECT_QUERY_FILE, ENV_TWITTER_POPULAR_QUERY_FILE,
		ENV_TWITTER_SEARCH_STRATEGIES, ENV_TWITTER_SEARCH_LANG, ENV_TWITTER_DRYRUN,
		ENV_TWITTER_FOUND_SLEEP_SECONDS, ENV_TWITTER_EMPTY_SLEEP_SECONDS,
		ENV_TWITTER_RETRY_SLEEP_SECONDS, ENV_TWITTER_API_BASE_URL, ENV_PROXY_DSN,
		ENV_HISTORY_DATABASE_PATH, ENV_HISTORY_RETENTION_DAYS,
		ENV_TELEGRAM_API_KEY, ENV_TELEGRAM_ADMIN_CHAT_ID, ENV_LOG_LEVEL, ENV_LOG_FORMAT,
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestProvideConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")

		config, err := ProvideConfig()
		require.NoError(t, err)

		assert.Equal(t, "acct", config.TwitterHandle)
		assert.Equal(t, DEFAULT_SECRET_FILE, config.SecretFile)
		assert.Equal(t, DEFAULT_ACCOUNTS_FILE, config.AccountsFile)
		assert.Equal(t, DEFAULT_WORDS_FILE, config.WordsFile)
		assert.Equal(t, []string{STRATEGY_DIRECT, STRATEGY_POPULAR, STRATEGY_INDIRECT}, config.SearchStrategies)
		assert.Equal(t, DEFAULT_SEARCH_LANG, config.SearchLang)
		assert.False(t, config.DryRun)
		assert.Equal(t, 1600*time.Second, config.FoundSleep)
		assert.Equal(t, 600*time.Second, config.EmptySleep)
		assert.Equal(t, 240*time.Second, config.RetrySleep)
		assert.Equal(t, DEFAULT_API_BASE_URL, config.TwitterAPIBaseURL)
		assert.Equal(t, DEFAULT_HISTORY_RETENTION_DAYS, config.HistoryRetentionDays)
	})

	t.Run("missing handle", func(t *testing.T) {
		clearBotEnv(t)

		_, err := ProvideConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), ENV_TWITTER_HANDLE)
	})

	t.Run("dry run only on exact 1", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")

		t.Setenv(ENV_TWITTER_DRYRUN, "1")
		config, err := ProvideConfig()
		require.NoError(t, err)
		assert.True(t, config.DryRun)

		t.Setenv(ENV_TWITTER_DRYRUN, "true")
		config, err = ProvideConfig()
		require.NoError(t, err)
		assert.False(t, config.DryRun)
	})

	t.Run("custom backoffs", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")
		t.Setenv(ENV_TWITTER_FOUND_SLEEP_SECONDS, "900")
		t.Setenv(ENV_TWITTER_EMPTY_SLEEP_SECONDS, "300")

		config, err := ProvideConfig()
		require.NoError(t, err)
		assert.Equal(t, 900*time.Second, config.FoundSleep)
		assert.Equal(t, 300*time.Second, config.EmptySleep)
	})

	t.Run("invalid backoff", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")
		t.Setenv(ENV_TWITTER_FOUND_SLEEP_SECONDS, "soon")

		_, err := ProvideConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), ENV_TWITTER_FOUND_SLEEP_SECONDS)
	})

	t.Run("custom strategy order", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")
		t.Setenv(ENV_TWITTER_SEARCH_STRATEGIES, "popular, direct")

		config, err := ProvideConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{STRATEGY_POPULAR, STRATEGY_DIRECT}, config.SearchStrategies)
	})

	t.Run("invalid retention", func(t *testing.T) {
		clearBotEnv(t)
		t.Setenv(ENV_TWITTER_HANDLE, "acct")
		t.Setenv(ENV_HISTORY_RETENTION_DAYS, "0")

		_, err := ProvideConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), ENV_HISTORY_RETENTION_DAYS)
	})
}

func TestBuildContainer(t *testing.T) {
	container, err := BuildContainer()
	require.NoError(t, err)
	assert.NotNil(t, container)
}
