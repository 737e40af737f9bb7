package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BoardFetcher defines the read operations the workflow needs from Trello.
// This interface is implemented by *Client and can be used for testing.
type BoardFetcher interface {
	FetchBoards(ctx context.Context) ([]Board, error)
	FetchLists(ctx context.Context, boardID string) ([]List, error)
	FetchCards(ctx context.Context, listID string) ([]Card, error)
}

// Ensure Client implements BoardFetcher at compile time.
var _ BoardFetcher = (*Client)(nil)

// Client talks to the Trello REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     Credentials
	userAgent string
}

const (
	DefaultBaseURL   = "https://api.trello.com/1"
	defaultUserAgent = "trellotally/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for baseURL. Credentials are not checked here;
// bad ones surface as ErrAuth on the first request.
func NewClient(baseURL string, creds Credentials) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		creds:     creds,
		userAgent: defaultUserAgent,
	}, nil
}

// FetchBoards retrieves the boards of the member owning the token.
func (c *Client) FetchBoards(ctx context.Context) ([]Board, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var boards []Board
	if err := c.get(ctx, "boards", "members/me/boards", &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// FetchLists retrieves the lists of one board.
func (c *Client) FetchLists(ctx context.Context, boardID string) ([]List, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(boardID) == "" {
		return nil, fmt.Errorf("board id required")
	}
	var lists []List
	if err := c.get(ctx, "lists", "boards/"+url.PathEscape(boardID)+"/lists", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// FetchCards retrieves the cards of one list. Price and checked state are
// local-only and always start zeroed.
func (c *Client) FetchCards(ctx context.Context, listID string) ([]Card, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(listID) == "" {
		return nil, fmt.Errorf("list id required")
	}
	var payload []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.get(ctx, "cards", "lists/"+url.PathEscape(listID)+"/cards", &payload); err != nil {
		return nil, err
	}
	cards := make([]Card, 0, len(payload))
	for _, p := range payload {
		cards = append(cards, Card{ID: p.ID, Name: p.Name})
	}
	return cards, nil
}

func (c *Client) get(ctx context.Context, op, path string, dest any) error {
	values := url.Values{}
	values.Set("key", c.creds.APIKey)
	values.Set("token", c.creds.Token)
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Op: op, Reason: ReasonNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &FetchError{Op: op, Reason: ReasonStatus, Status: resp.StatusCode, Err: ErrAuth}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &FetchError{Op: op, Reason: ReasonStatus, Status: resp.StatusCode}
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &FetchError{Op: op, Reason: ReasonDecode, Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	// Relative endpoint paths resolve under the version prefix only when the
	// base path ends in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
