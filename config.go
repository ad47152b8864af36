package main

const ENV_TWITTER_HANDLE = "TWITTER_HANDLE"
const ENV_TWITTER_SECRET_FILE = "TWITTER_SECRET_FILE"
const ENV_TWITTER_NEVER_SHARE_ACCOUNTS_FILE = "TWITTER_NEVER_SHARE_ACCOUNTS_FILE"
const ENV_TWITTER_NEVER_SHARE_WORDS_FILE = "TWITTER_NEVER_SHARE_WORDS_FILE"
const ENV_TWITTER_DIRECT_QUERY_FILE = "TWITTER_DIRECT_QUERY_FILE"
const ENV_TWITTER_INDIRECT_QUERY_FILE = "TWITTER_INDIRECT_QUERY_FILE"
const ENV_TWITTER_POPULAR_QUERY_FILE = "TWITTER_POPULAR_QUERY_FILE"
const ENV_TWITTER_SEARCH_STRATEGIES = "TWITTER_SEARCH_STRATEGIES"
const ENV_TWITTER_SEARCH_LANG = "TWITTER_SEARCH_LANG"
const ENV_TWITTER_DRYRUN = "TWITTER_DRYRUN" // "1" runs the full decision path without retweeting
const ENV_TWITTER_FOUND_SLEEP_SECONDS = "TWITTER_FOUND_SLEEP_SECONDS"
const ENV_TWITTER_EMPTY_SLEEP_SECONDS = "TWITTER_EMPTY_SLEEP_SECONDS"
const ENV_TWITTER_RETRY_SLEEP_SECONDS = "TWITTER_RETRY_SLEEP_SECONDS"
const ENV_TWITTER_API_BASE_URL = "TWITTER_API_BASE_URL"
const ENV_PROXY_DSN = "PROXY_DSN"
const ENV_HISTORY_DATABASE_PATH = "HISTORY_DATABASE_PATH"
const ENV_HISTORY_RETENTION_DAYS = "HISTORY_RETENTION_DAYS"
const ENV_TELEGRAM_API_KEY = "TELEGRAM_API_KEY"
const ENV_TELEGRAM_ADMIN_CHAT_ID = "TELEGRAM_ADMIN_CHAT_ID"
const ENV_LOG_LEVEL = "LOG_LEVEL"
const ENV_LOG_FORMAT = "LOG_FORMAT"

// Search strategy names, also the valid TWITTER_SEARCH_STRATEGIES entries
const STRATEGY_DIRECT = "direct"     // direct mentions, newest first
const STRATEGY_INDIRECT = "indirect" // related hashtags, newest first
const STRATEGY_POPULAR = "popular"   // ranked by engagement

// Candidate set sizes per strategy kind
const RECENT_SEARCH_LIMIT = 1
const POPULAR_SEARCH_LIMIT = 10

// Reshare attempt outcomes
const SHARE_OUTCOME_SHARED = "shared"
const SHARE_OUTCOME_DRY_RUN = "dry_run"
const SHARE_OUTCOME_FAILED = "failed"
const SHARE_OUTCOME_BLOCKED_ACCOUNT = "blocked_account"
const SHARE_OUTCOME_BLOCKED_WORD = "blocked_word"

// Cycle outcomes
const CYCLE_OUTCOME_FOUND = "found"
const CYCLE_OUTCOME_EMPTY = "empty"

// Defaults applied by ProvideConfig when the variable is unset
const DEFAULT_SECRET_FILE = "config/secret.json"
const DEFAULT_ACCOUNTS_FILE = "config/never_share_accounts.txt"
const DEFAULT_WORDS_FILE = "config/never_share_words.txt"
const DEFAULT_DIRECT_QUERY_FILE = "config/direct.txt"
const DEFAULT_INDIRECT_QUERY_FILE = "config/indirect.txt"
const DEFAULT_POPULAR_QUERY_FILE = "config/popular.txt"
const DEFAULT_SEARCH_STRATEGIES = "direct,popular,indirect"
const DEFAULT_SEARCH_LANG = "en"
const DEFAULT_API_BASE_URL = "https://api.twitterapi.io"
const DEFAULT_HISTORY_DATABASE_PATH = "history.db"
const DEFAULT_FOUND_SLEEP_SECONDS = 1600
const DEFAULT_EMPTY_SLEEP_SECONDS = 600
const DEFAULT_RETRY_SLEEP_SECONDS = 240
const DEFAULT_HISTORY_RETENTION_DAYS = 90
