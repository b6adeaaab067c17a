// Package portal fetches the attendance page from the time-management portal
// with an OAuth2 token obtained through the device code flow.
package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/time-manager/internal/config"
)

// maxPageBytes bounds the size of a fetched page.
const maxPageBytes = 16 << 20

// Client is an authenticated portal client.
type Client struct {
	httpClient *http.Client
}

// NewClient loads the stored token and returns a client that refreshes it
// when needed, persisting every refreshed token to tokenPath.
func NewClient(ctx context.Context, pc config.PortalConfig, tokenPath string, log logrus.FieldLogger) (*Client, error) {
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrNotAuthenticated
	}
	ts := OAuth2Config(pc).TokenSource(ctx, tok)
	return &Client{
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts, path: tokenPath, last: tok.AccessToken, log: log}),
	}, nil
}

// NewClientWithHTTP wraps an existing HTTP client, e.g. for pages that need
// no authentication.
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	path string
	last string
	log  logrus.FieldLogger
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := SaveToken(s.path, tok); err != nil && s.log != nil {
			s.log.WithError(err).Warn("Could not save refreshed portal token")
		}
	}
	return tok, nil
}

// FetchPage downloads the page at url. Any status other than 200 is an error.
func (c *Client) FetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
