package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Result is one ranked hit from the search provider.
type Result struct {
	Title string
	Link  string
}

// Client wraps the Google Custom Search JSON API.
type Client interface {
	Search(ctx context.Context, query string, numResults int) ([]Result, error)
}

type Config struct {
	APIKey  string
	CSEID   string
	BaseURL string
}

type client struct {
	log        *logger.Logger
	apiKey     string
	cseID      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, baseLog *logger.Logger) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GOOGLE_API_KEY")
	}
	if strings.TrimSpace(cfg.CSEID) == "" {
		return nil, fmt.Errorf("missing GOOGLE_CSE_ID")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		log:        baseLog.With("client", "SearchClient"),
		apiKey:     cfg.APIKey,
		cseID:      cfg.CSEID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type searchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

func (c *client) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(numResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]Result, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, Result{Title: item.Title, Link: item.Link})
	}
	return results, nil
}
