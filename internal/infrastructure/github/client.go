package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable reports a non-success answer from GitHub for the given
// username. Transport failures are returned as-is.
var ErrUnavailable = errors.New("github resource unavailable")

// Client fetches the five most recently created public repositories of a
// user. Pass-through only: no retries, no caching, no rate-limit handling.
type Client interface {
	ListRepositories(ctx context.Context, username string) (json.RawMessage, error)
}

type httpClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
	logger       *log.Logger
}

func NewClient(baseURL, clientID, clientSecret string, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &httpClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
	}
}

func (c *httpClient) ListRepositories(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUnavailable
	}

	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created")
	q.Set("direction", "desc")
	if c.clientID != "" && c.clientSecret != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnect")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[GitHub] request failed username=%s err=%v", username, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Printf("[GitHub] non-success username=%s status=%d", username, resp.StatusCode)
		}
		return nil, ErrUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("github: invalid JSON response")
	}
	return json.RawMessage(body), nil
}

var _ Client = (*httpClient)(nil)
