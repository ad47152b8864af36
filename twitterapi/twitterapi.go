package twitterapi

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/buger/jsonparser"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrSendRequest marks transport-level failures: the request never produced an
// HTTP response. Callers treat these as transient.
var ErrSendRequest = errors.New("Failed to send request")

type TwitterAPIService struct {
	creds      Credentials
	httpClient *http.Client
	baseUrl    string
}

// NewTwitterAPIService builds the gateway client. Rate-limit (429) and 5xx
// responses are retried internally with backoff before an error surfaces.
func NewTwitterAPIService(creds Credentials, baseUrl string, proxyDSN string) *TwitterAPIService {
	transport := &http.Transport{}
	if proxyDSN != "" {
		proxyURL, err := url.Parse(proxyDSN)
		if err != nil {
			panic(err)
		}

		transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
		}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout:   10 * time.Second,
		Transport: transport,
	}

	return &TwitterAPIService{
		creds:      creds,
		baseUrl:    baseUrl,
		httpClient: retryClient.StandardClient(),
	}
}

func (s *TwitterAPIService) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", s.creds.APIKey)
	req.Header.Set("X-API-Secret", s.creds.APISecret)
	req.Header.Set("X-Access-Token", s.creds.AccessToken)
	req.Header.Set("X-Access-Token-Secret", s.creds.AccessTokenSecret)
	req.Header.Set("Content-Type", "application/json")
}

func (s *TwitterAPIService) makeRequest(uri string, params map[string]string) (*APIResponse, error) {
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, fmt.Errorf("error create request: %w", err)
	}
	s.setAuthHeaders(req)

	q := req.URL.Query()
	for key, value := range params {
		if value != "" && key == "cursor" {
			unescape, _ := url.QueryUnescape(value)
			q.Add(key, unescape)
		} else if value != "" {
			q.Add(key, value)
		}
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendRequest, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawBody:    bodyBytes,
	}, nil
}

func (s *TwitterAPIService) makePostRequest(uri string, body interface{}) (*APIResponse, error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", uri, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error create request: %w", err)
	}
	s.setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendRequest, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawBody:    bodyBytes,
	}, nil
}

// errorReason pulls the gateway's failure message out of an error body, falling
// back to the raw body when it is not the usual {"status":"error","msg":"..."} shape.
func errorReason(rawBody []byte) string {
	if msg, err := jsonparser.GetString(rawBody, "msg"); err == nil && msg != "" {
		return msg
	}
	if msg, err := jsonparser.GetString(rawBody, "message"); err == nil && msg != "" {
		return msg
	}
	return string(rawBody)
}

func (s *TwitterAPIService) AdvancedSearch(request AdvancedSearchRequest) (*AdvancedSearchResponse, error) {
	uri := s.baseUrl + "/twitter/tweet/advanced_search"

	params := map[string]string{
		"query": request.Query,
	}
	if request.QueryType != "" {
		params["queryType"] = request.QueryType
	}
	if request.Lang != "" {
		params["lang"] = request.Lang
	}
	if request.Cursor != "" {
		params["cursor"] = request.Cursor
	}

	response, err := s.makeRequest(uri, params)
	if err != nil {
		return nil, fmt.Errorf("error advanced_search: %w", err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("error advanced_search, status non 200: %s", errorReason(response.RawBody))
	}

	searchResponse := AdvancedSearchResponse{}
	err = json.Unmarshal(response.RawBody, &searchResponse)
	return &searchResponse, err
}

func (s *TwitterAPIService) Retweet(request RetweetRequest) (*RetweetResponse, error) {
	uri := s.baseUrl + "/twitter/retweet_tweet"

	response, err := s.makePostRequest(uri, request)
	if err != nil {
		return nil, fmt.Errorf("error retweet: %w", err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("error retweet, status non 200: %s", errorReason(response.RawBody))
	}

	retweetResponse := RetweetResponse{}
	if err := json.Unmarshal(response.RawBody, &retweetResponse); err != nil {
		return nil, fmt.Errorf("error parse retweet response: %w", err)
	}
	if retweetResponse.Status != "" && retweetResponse.Status != "success" {
		return &retweetResponse, fmt.Errorf("error retweet tweet %s: %s", request.TweetID, retweetResponse.Message)
	}
	return &retweetResponse, nil
}
