package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grutapig/resharebot/twitterapi"
	"github.com/joho/godotenv"
)

// Preflight validates the bot's configuration without touching the network:
// secret file, block lists, query files and the effective backoff settings.
// Exit code is non-zero on the first problem, so it can gate deployments.

func env(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func fail(format string, args ...interface{}) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("cannot read %s: %v", path, err)
	}
	lines := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func buildQuery(fragments []string, handle string) string {
	wrapped := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		wrapped = append(wrapped, "("+fragment+")")
	}
	return strings.Join(wrapped, " OR ") + " -filter:retweets AND -filter:replies AND -from:" + handle
}

func sleepSeconds(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		fail("%s must be a non-negative number of seconds, got %q", key, value)
	}
	return seconds
}

func main() {
	godotenv.Load()

	handle := os.Getenv("TWITTER_HANDLE")
	if handle == "" {
		fail("TWITTER_HANDLE is not set")
	}
	fmt.Printf("✅ handle: @%s\n", handle)

	secretFile := env("TWITTER_SECRET_FILE", "config/secret.json")
	if _, err := twitterapi.LoadCredentials(secretFile); err != nil {
		fail("secret file: %v", err)
	}
	fmt.Printf("✅ credentials: %s\n", secretFile)

	accountsFile := env("TWITTER_NEVER_SHARE_ACCOUNTS_FILE", "config/never_share_accounts.txt")
	wordsFile := env("TWITTER_NEVER_SHARE_WORDS_FILE", "config/never_share_words.txt")
	fmt.Printf("✅ blocked accounts: %d (%s)\n", len(readLines(accountsFile)), accountsFile)
	fmt.Printf("✅ blocked words: %d (%s)\n", len(readLines(wordsFile)), wordsFile)

	queryFiles := map[string]string{
		"direct":   env("TWITTER_DIRECT_QUERY_FILE", "config/direct.txt"),
		"indirect": env("TWITTER_INDIRECT_QUERY_FILE", "config/indirect.txt"),
		"popular":  env("TWITTER_POPULAR_QUERY_FILE", "config/popular.txt"),
	}

	strategies := strings.Split(env("TWITTER_SEARCH_STRATEGIES", "direct,popular,indirect"), ",")
	for i, name := range strategies {
		name = strings.TrimSpace(name)
		path, ok := queryFiles[name]
		if !ok {
			fail("unknown search strategy: %s", name)
		}
		fragments := readLines(path)
		if len(fragments) == 0 {
			fail("query file %s has no fragments", path)
		}
		fmt.Printf("✅ strategy %d %s: %s\n", i+1, name, buildQuery(fragments, handle))
	}

	fmt.Printf("✅ found sleep: %ds, empty sleep: %ds, retry sleep: %ds\n",
		sleepSeconds("TWITTER_FOUND_SLEEP_SECONDS", 1600),
		sleepSeconds("TWITTER_EMPTY_SLEEP_SECONDS", 600),
		sleepSeconds("TWITTER_RETRY_SLEEP_SECONDS", 240))

	if os.Getenv("TWITTER_DRYRUN") == "1" {
		fmt.Println("✅ dry-run mode is ON")
	}

	fmt.Println("🚀 preflight passed")
}
