// Package guild checks community guild membership against the guild API.
package guild

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client verifies guild membership over HTTP. A zero BaseURL disables the
// check entirely, which is the development default.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IsMember reports whether the username belongs to the guild. The guild API
// answers 200 for members and 404 for everyone else.
func (c *Client) IsMember(ctx context.Context, username string) (bool, error) {
	if c.baseURL == "" {
		return true, nil
	}

	endpoint := fmt.Sprintf("%s/members/%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("guild api returned status %d", resp.StatusCode)
	}
}
