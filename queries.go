package main

import (
	"fmt"
	"strings"

	"github.com/grutapig/resharebot/twitterapi"
)

// SearchStrategy is one named search configuration: its query expression,
// result ranking and result-set size.
type SearchStrategy struct {
	Name      string
	Query     string
	QueryType string
	Limit     int
}

// QuerySet is the ordered strategy list the control loop walks each cycle.
type QuerySet []SearchStrategy

// BuildSearchQuery joins query fragments into one boolean expression and appends
// the fixed exclusions: no retweets, no replies, nothing authored by handle.
func BuildSearchQuery(fragments []string, handle string) string {
	wrapped := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		wrapped = append(wrapped, "("+fragment+")")
	}
	return strings.Join(wrapped, " OR ") + " -filter:retweets AND -filter:replies AND -from:" + handle
}

// LoadQueryFragments reads one query fragment per line. An empty file is a
// configuration error: the resulting expression would match the whole platform.
func LoadQueryFragments(path string) ([]string, error) {
	fragments, err := readListFile(path)
	if err != nil {
		return nil, fmt.Errorf("error read query file: %w", err)
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("query file %s has no fragments", path)
	}
	return fragments, nil
}

// LoadQuerySet builds the strategy list in the configured priority order.
// Recent strategies take the newest result only; popular takes a larger set so
// a few blocked results do not exhaust the attempt.
func LoadQuerySet(config *Config) (QuerySet, error) {
	files := map[string]string{
		STRATEGY_DIRECT:   config.DirectQueryFile,
		STRATEGY_INDIRECT: config.IndirectQueryFile,
		STRATEGY_POPULAR:  config.PopularQueryFile,
	}

	querySet := QuerySet{}
	for _, name := range config.SearchStrategies {
		file, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("unknown search strategy: %s", name)
		}

		fragments, err := LoadQueryFragments(file)
		if err != nil {
			return nil, fmt.Errorf("error load %s strategy: %w", name, err)
		}

		strategy := SearchStrategy{
			Name:      name,
			Query:     BuildSearchQuery(fragments, config.TwitterHandle),
			QueryType: twitterapi.LATEST,
			Limit:     RECENT_SEARCH_LIMIT,
		}
		if name == STRATEGY_POPULAR {
			strategy.QueryType = twitterapi.TOP
			strategy.Limit = POPULAR_SEARCH_LIMIT
		}

		querySet = append(querySet, strategy)
	}

	if len(querySet) == 0 {
		return nil, fmt.Errorf("no search strategies configured")
	}
	return querySet, nil
}
