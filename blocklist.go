package main

import (
	"fmt"
	"os"
	"strings"
)

// BlockList holds the accounts and words that must never be reshared.
// Loaded once at startup, read-only afterwards.
type BlockList struct {
	accounts map[string]bool
	words    []string
}

func NewBlockListFromFiles(accountsPath string, wordsPath string) (*BlockList, error) {
	accounts, err := readListFile(accountsPath)
	if err != nil {
		return nil, fmt.Errorf("error read blocked accounts file: %w", err)
	}

	words, err := readListFile(wordsPath)
	if err != nil {
		return nil, fmt.Errorf("error read blocked words file: %w", err)
	}

	accountSet := make(map[string]bool, len(accounts))
	for _, account := range accounts {
		accountSet[account] = true
	}

	return &BlockList{
		accounts: accountSet,
		words:    words,
	}, nil
}

// readListFile returns the non-blank trimmed lines of a list file. Blank lines
// are dropped: an empty blocked word would match every tweet.
func readListFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// IsBlockedAccount matches the author identifier exactly, case-sensitive.
func (b *BlockList) IsBlockedAccount(username string) bool {
	return b.accounts[username]
}

// MatchBlockedWord reports the first blocked word contained in text.
// Matching is case-sensitive substring, in file order.
func (b *BlockList) MatchBlockedWord(text string) (string, bool) {
	for _, word := range b.words {
		if strings.Contains(text, word) {
			return word, true
		}
	}
	return "", false
}

func (b *BlockList) AccountCount() int {
	return len(b.accounts)
}

func (b *BlockList) WordCount() int {
	return len(b.words)
}
