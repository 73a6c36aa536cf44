package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/artem13815/newsdash/pkg/news"
	"github.com/artem13815/newsdash/pkg/upstream"
)

const defaultBaseURL = "https://newsapi.org/v2"

// NewsAPI appends "… [+1234 chars]" to truncated content.
var truncationMarker = regexp.MustCompile(`\s*(…|\.\.\.)?\s*\[\+\d+ chars\]\s*$`)

// Client fetches top headlines from newsapi.org.
type Client struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: timeout},
	}
}

type response struct {
	Status       string         `json:"status"`
	Code         string         `json:"code"`
	Message      string         `json:"message"`
	TotalResults int            `json:"totalResults"`
	Articles     []news.Article `json:"articles"`
}

// Fetch implements news.NewsSource.
func (c *Client) Fetch(ctx context.Context, category, language string, pageSize int) (news.FetchResult, error) {
	if c.APIKey == "" {
		return news.FetchResult{}, errors.New("news api key is empty")
	}
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if language != "" {
		q.Set("language", language)
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	endpoint := fmt.Sprintf("%s/top-headlines?%s", c.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return news.FetchResult{}, err
	}
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return news.FetchResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return news.FetchResult{}, upstream.FromResponse("newsapi", resp)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return news.FetchResult{}, fmt.Errorf("decode newsapi response: %w", err)
	}
	if out.Status == news.StatusError {
		return news.FetchResult{Status: out.Status, Message: out.Message}, nil
	}

	articles := make([]news.Article, 0, len(out.Articles))
	for _, a := range out.Articles {
		if a.Title == "[Removed]" || a.URL == "" {
			continue
		}
		a.Content = truncationMarker.ReplaceAllString(a.Content, "")
		articles = append(articles, a)
	}
	return news.FetchResult{
		Status:       out.Status,
		Articles:     articles,
		TotalResults: out.TotalResults,
	}, nil
}
