package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grutapig/resharebot/twitterapi"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// Config is the immutable run configuration, built once from the environment.
type Config struct {
	TwitterHandle        string
	SecretFile           string
	AccountsFile         string
	WordsFile            string
	DirectQueryFile      string
	IndirectQueryFile    string
	PopularQueryFile     string
	SearchStrategies     []string
	SearchLang           string
	DryRun               bool
	FoundSleep           time.Duration
	EmptySleep           time.Duration
	RetrySleep           time.Duration
	TwitterAPIBaseURL    string
	ProxyDSN             string
	HistoryDBPath        string
	HistoryRetentionDays int
	TelegramAPIKey       string
	TelegramAdminChatID  string
	LogLevel             string
	LogFormat            string
}

func envOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func envSeconds(key string, fallback int) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number of seconds, got %q", key, value)
	}
	return time.Duration(seconds) * time.Second, nil
}

func ProvideConfig() (*Config, error) {
	handle := os.Getenv(ENV_TWITTER_HANDLE)
	if handle == "" {
		return nil, fmt.Errorf("own handle should be set in .env: %s", ENV_TWITTER_HANDLE)
	}

	foundSleep, err := envSeconds(ENV_TWITTER_FOUND_SLEEP_SECONDS, DEFAULT_FOUND_SLEEP_SECONDS)
	if err != nil {
		return nil, err
	}
	emptySleep, err := envSeconds(ENV_TWITTER_EMPTY_SLEEP_SECONDS, DEFAULT_EMPTY_SLEEP_SECONDS)
	if err != nil {
		return nil, err
	}
	retrySleep, err := envSeconds(ENV_TWITTER_RETRY_SLEEP_SECONDS, DEFAULT_RETRY_SLEEP_SECONDS)
	if err != nil {
		return nil, err
	}

	retentionDays := DEFAULT_HISTORY_RETENTION_DAYS
	if value := os.Getenv(ENV_HISTORY_RETENTION_DAYS); value != "" {
		retentionDays, err = strconv.Atoi(value)
		if err != nil || retentionDays < 1 {
			return nil, fmt.Errorf("%s must be a positive number of days, got %q", ENV_HISTORY_RETENTION_DAYS, value)
		}
	}

	strategies := []string{}
	for _, name := range strings.Split(envOrDefault(ENV_TWITTER_SEARCH_STRATEGIES, DEFAULT_SEARCH_STRATEGIES), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		strategies = append(strategies, name)
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%s must name at least one strategy", ENV_TWITTER_SEARCH_STRATEGIES)
	}

	return &Config{
		TwitterHandle:        handle,
		SecretFile:           envOrDefault(ENV_TWITTER_SECRET_FILE, DEFAULT_SECRET_FILE),
		AccountsFile:         envOrDefault(ENV_TWITTER_NEVER_SHARE_ACCOUNTS_FILE, DEFAULT_ACCOUNTS_FILE),
		WordsFile:            envOrDefault(ENV_TWITTER_NEVER_SHARE_WORDS_FILE, DEFAULT_WORDS_FILE),
		DirectQueryFile:      envOrDefault(ENV_TWITTER_DIRECT_QUERY_FILE, DEFAULT_DIRECT_QUERY_FILE),
		IndirectQueryFile:    envOrDefault(ENV_TWITTER_INDIRECT_QUERY_FILE, DEFAULT_INDIRECT_QUERY_FILE),
		PopularQueryFile:     envOrDefault(ENV_TWITTER_POPULAR_QUERY_FILE, DEFAULT_POPULAR_QUERY_FILE),
		SearchStrategies:     strategies,
		SearchLang:           envOrDefault(ENV_TWITTER_SEARCH_LANG, DEFAULT_SEARCH_LANG),
		DryRun:               os.Getenv(ENV_TWITTER_DRYRUN) == "1",
		FoundSleep:           foundSleep,
		EmptySleep:           emptySleep,
		RetrySleep:           retrySleep,
		TwitterAPIBaseURL:    envOrDefault(ENV_TWITTER_API_BASE_URL, DEFAULT_API_BASE_URL),
		ProxyDSN:             os.Getenv(ENV_PROXY_DSN),
		HistoryDBPath:        envOrDefault(ENV_HISTORY_DATABASE_PATH, DEFAULT_HISTORY_DATABASE_PATH),
		HistoryRetentionDays: retentionDays,
		TelegramAPIKey:       os.Getenv(ENV_TELEGRAM_API_KEY),
		TelegramAdminChatID:  os.Getenv(ENV_TELEGRAM_ADMIN_CHAT_ID),
		LogLevel:             envOrDefault(ENV_LOG_LEVEL, "info"),
		LogFormat:            envOrDefault(ENV_LOG_FORMAT, "text"),
	}, nil
}

func ProvideLogger(config *Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", ENV_LOG_LEVEL, config.LogLevel, err)
	}
	logger.SetLevel(level)

	if config.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}

func ProvideTwitterAPI(config *Config) (*twitterapi.TwitterAPIService, error) {
	creds, err := twitterapi.LoadCredentials(config.SecretFile)
	if err != nil {
		return nil, err
	}
	return twitterapi.NewTwitterAPIService(creds, config.TwitterAPIBaseURL, config.ProxyDSN), nil
}

func ProvideBlockList(config *Config) (*BlockList, error) {
	return NewBlockListFromFiles(config.AccountsFile, config.WordsFile)
}

func ProvideQuerySet(config *Config) (QuerySet, error) {
	return LoadQuerySet(config)
}

func ProvideHistoryService(config *Config) (*HistoryService, error) {
	return NewHistoryService(config.HistoryDBPath)
}

func ProvideTelegramService(config *Config, logger *logrus.Logger) (*TelegramService, error) {
	return NewTelegramService(config.TelegramAPIKey, config.TelegramAdminChatID, logger)
}

func ProvideReshareEngine(api *twitterapi.TwitterAPIService, blockList *BlockList, historyService *HistoryService, logger *logrus.Logger, config *Config) *ReshareEngine {
	return NewReshareEngine(api, blockList, historyService, logger, config)
}

func ProvideTwitterBotService(engine *ReshareEngine, querySet QuerySet, telegramService *TelegramService, historyService *HistoryService, logger *logrus.Logger, config *Config) *TwitterBotService {
	return NewTwitterBotService(engine, querySet, telegramService, historyService, logger, config)
}

func ProvideCleanupScheduler(historyService *HistoryService, config *Config) *CleanupScheduler {
	return NewCleanupScheduler(historyService, config.HistoryRetentionDays)
}

func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(ProvideConfig); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}

	if err := container.Provide(ProvideLogger); err != nil {
		return nil, fmt.Errorf("failed to provide logger: %w", err)
	}

	if err := container.Provide(ProvideTwitterAPI); err != nil {
		return nil, fmt.Errorf("failed to provide Twitter API: %w", err)
	}

	if err := container.Provide(ProvideBlockList); err != nil {
		return nil, fmt.Errorf("failed to provide block list: %w", err)
	}

	if err := container.Provide(ProvideQuerySet); err != nil {
		return nil, fmt.Errorf("failed to provide query set: %w", err)
	}

	if err := container.Provide(ProvideHistoryService); err != nil {
		return nil, fmt.Errorf("failed to provide history service: %w", err)
	}

	if err := container.Provide(ProvideTelegramService); err != nil {
		return nil, fmt.Errorf("failed to provide Telegram service: %w", err)
	}

	if err := container.Provide(ProvideReshareEngine); err != nil {
		return nil, fmt.Errorf("failed to provide reshare engine: %w", err)
	}

	if err := container.Provide(ProvideTwitterBotService); err != nil {
		return nil, fmt.Errorf("failed to provide twitterbot service: %w", err)
	}

	if err := container.Provide(ProvideCleanupScheduler); err != nil {
		return nil, fmt.Errorf("failed to provide cleanup scheduler: %w", err)
	}

	if err := container.Provide(NewApplication); err != nil {
		return nil, fmt.Errorf("failed to provide application: %w", err)
	}

	return container, nil
}
