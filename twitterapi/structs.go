package twitterapi

import (
	"encoding/json"
	"fmt"
	"os"
)

const LATEST = "Latest"
const TOP = "Top"

// Credentials is the API key/secret/token quadruple the gateway authenticates with.
// The secret file keeps the legacy consumer_* key names.
type Credentials struct {
	APIKey            string `json:"consumer_key"`
	APISecret         string `json:"consumer_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("error read secret file: %w", err)
	}

	creds := Credentials{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("error parse secret file %s: %w", path, err)
	}

	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessTokenSecret == "" {
		return Credentials{}, fmt.Errorf("secret file %s must contain consumer_key, consumer_secret, access_token and access_token_secret", path)
	}
	return creds, nil
}

type APIResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	RawBody    []byte              `json:"raw_body"`
}

type Author struct {
	Type      string `json:"type"`
	UserName  string `json:"userName"`
	Id        string `json:"id"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}

type Tweet struct {
	Type         string `json:"type"`
	Id           string `json:"id"`
	Url          string `json:"url"`
	Text         string `json:"text"`
	RetweetCount int    `json:"retweetCount"`
	ReplyCount   int    `json:"replyCount"`
	LikeCount    int    `json:"likeCount"`
	CreatedAt    string `json:"createdAt"`
	Lang         string `json:"lang"`
	IsReply      bool   `json:"isReply"`
	Author       Author `json:"author"`
}

type AdvancedSearchRequest struct {
	Query     string
	QueryType string
	Lang      string
	Cursor    string
}

type AdvancedSearchResponse struct {
	Tweets      []Tweet `json:"tweets"`
	HasNextPage bool    `json:"has_next_page"`
	NextCursor  string  `json:"next_cursor"`
	Status      string  `json:"status"`
	Message     string  `json:"msg"`
}

type RetweetRequest struct {
	TweetID string `json:"tweet_id"`
}

type RetweetResponse struct {
	Status  string `json:"status"`
	Message string `json:"msg"`
}
