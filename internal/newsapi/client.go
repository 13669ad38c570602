package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/verinews/apiserver/config"
	"github.com/verinews/apiserver/types"
)

const defaultPageSize = 10

// Client fetches raw articles from a NewsAPI-compatible endpoint.
type Client struct {
	baseURL  string
	apiKey   string
	country  string
	pageSize int
	http     *http.Client
}

// NewClient creates a reusable HTTP client from config.
func NewClient(cfg config.NewsConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("news api key is required")
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		country:  cfg.Country,
		pageSize: pageSize,
		http:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// TopHeadlines fetches headlines for a category in the configured country.
func (c *Client) TopHeadlines(ctx context.Context, category string) ([]types.Article, error) {
	params := url.Values{}
	params.Set("country", c.country)
	if strings.TrimSpace(category) != "" {
		params.Set("category", category)
	}
	return c.fetch(ctx, "/top-headlines", params)
}

// Everything searches all indexed articles for a query.
func (c *Client) Everything(ctx context.Context, query string) ([]types.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, "/everything", params)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]types.Article, error) {
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Articles []types.Article `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.Articles, nil
}
