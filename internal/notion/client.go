// Package notion is a minimal client for the Notion REST API covering the
// endpoints the sync pipeline uses: block children listing and mutation,
// database queries, and page creation.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trm-labs/notionsync/internal/faults"
)

const (
	defaultBaseURL = "https://api.notion.com"

	// maxPageSize is the largest page size the children listing accepts.
	maxPageSize = 100
	// maxChildrenPerAppend is the API limit on blocks per append request.
	maxChildrenPerAppend = 100
)

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API endpoint; defaults to the public API.
	BaseURL string
	// Token is the integration token sent as a Bearer credential.
	Token string
	// Version is the Notion-Version header value.
	Version string
	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
}

// Client talks to the Notion API. Calls fail fast: a failed request is
// surfaced as a faults.TransportError and never retried.
type Client struct {
	baseURL    string
	token      string
	version    string
	httpClient *http.Client
}

// NewClient constructs a Client from opts.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "2022-06-28"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		token:      opts.Token,
		version:    version,
		httpClient: httpClient,
	}
}

// ListChildren fetches one page of top-level child blocks of the given block
// or page. An empty cursor starts from the beginning; pageSize is clamped to
// the API maximum.
func (c *Client) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (ChildrenPage, error) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	query := url.Values{"page_size": []string{strconv.Itoa(pageSize)}}
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}

	var page ChildrenPage
	path := fmt.Sprintf("/v1/blocks/%s/children?%s", url.PathEscape(blockID), query.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return ChildrenPage{}, err
	}
	return page, nil
}

// ListAllChildren follows the has_more/next_cursor continuation protocol
// until the listing is exhausted and returns all child blocks in order.
func (c *Client) ListAllChildren(ctx context.Context, blockID string) ([]Child, error) {
	var all []Child
	cursor := ""
	for {
		page, err := c.ListChildren(ctx, blockID, cursor, maxPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Blocks...)
		if !page.HasMore || page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// DeleteBlock archives a single block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	path := "/v1/blocks/" + url.PathEscape(blockID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AppendChildren appends blocks to the given parent in one request. The
// caller is responsible for staying within the per-request block limit.
func (c *Client) AppendChildren(ctx context.Context, blockID string, blocks []Block) error {
	path := fmt.Sprintf("/v1/blocks/%s/children", url.PathEscape(blockID))
	payload := map[string]any{"children": blocks}
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

// QueryResult is one row returned by a database query. Only identity is
// needed by callers; the property payload stays raw.
type QueryResult struct {
	// ID is the page identifier of the matched row.
	ID string `json:"id"`
}

// QueryDatabaseByURL queries a database for rows whose URL property equals
// the given value, returning at most pageSize rows.
func (c *Client) QueryDatabaseByURL(ctx context.Context, databaseID, property, value string, pageSize int) ([]QueryResult, error) {
	payload := map[string]any{
		"filter": map[string]any{
			"property": property,
			"url":      map[string]string{"equals": value},
		},
		"page_size": pageSize,
	}

	var resp struct {
		Results []QueryResult `json:"results"`
	}
	path := fmt.Sprintf("/v1/databases/%s/query", url.PathEscape(databaseID))
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CreatePage creates a page under the given database parent with the
// provided properties and returns the new page identifier.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]any) (string, error) {
	payload := map[string]any{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": properties,
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/pages", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// do performs one JSON request against the API, decoding the response into
// out when non-nil. Non-2xx responses are turned into TransportErrors
// carrying the service error code and message when the body provides them.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal notion payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build notion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &faults.TransportError{Service: "notion", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &faults.TransportError{Service: "notion", Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &faults.TransportError{
			Service: "notion",
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(respBody)),
		}
		var parsed struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &parsed) == nil {
			terr.Code = parsed.Code
			if strings.TrimSpace(parsed.Message) != "" {
				terr.Message = parsed.Message
			}
		}
		return terr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode notion response: %w", err)
		}
	}
	return nil
}
