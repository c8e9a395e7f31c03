// Package tracker keeps an append-only log of processed pull requests in a
// Notion database, keyed by PR URL.
package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trm-labs/notionsync/internal/event"
	"github.com/trm-labs/notionsync/internal/notion"
)

// urlProperty is the database property holding the pull request URL.
const urlProperty = "Link"

// noPrefixSentinel is recorded when the branch carried no routing prefix.
const noPrefixSentinel = "none"

// Store records processed pull requests in a Notion database. The database
// is expected to carry Title (title), Author (rich_text), Date (date),
// Prefix (rich_text), and Link (url) properties.
type Store struct {
	client     *notion.Client
	logger     *slog.Logger
	databaseID string
}

// NewStore constructs a Store for the given tracking database.
func NewStore(client *notion.Client, logger *slog.Logger, databaseID string) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("tracker requires a notion client")
	}
	if databaseID == "" {
		return nil, fmt.Errorf("tracker requires a database identifier")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:     client,
		logger:     logger,
		databaseID: databaseID,
	}, nil
}

// Exists reports whether a row for the given PR URL is already present,
// using an exact-match filter with page size 1.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	results, err := s.client.QueryDatabaseByURL(ctx, s.databaseID, urlProperty, url, 1)
	if err != nil {
		return false, fmt.Errorf("query tracking database: %w", err)
	}
	return len(results) > 0, nil
}

// Record inserts one tracking row for the pull request and returns the new
// row's identifier. Rows carry the PR title, author, creation date
// (date-only), routing prefix (or "none"), and URL.
//
// Callers check Exists before Record; the database enforces no uniqueness
// constraint, so concurrent runs for the same URL can still double-insert.
func (s *Store) Record(ctx context.Context, pr event.PullRequest, prefix string) (string, error) {
	if prefix == "" {
		prefix = noPrefixSentinel
	}

	properties := map[string]any{
		"Title": map[string]any{
			"title": []map[string]any{
				{"type": "text", "text": map[string]string{"content": pr.Title}},
			},
		},
		"Author": map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]string{"content": pr.Author}},
			},
		},
		"Date": map[string]any{
			"date": map[string]string{"start": pr.CreatedDate()},
		},
		"Prefix": map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]string{"content": prefix}},
			},
		},
		urlProperty: map[string]any{
			"url": pr.URL,
		},
	}

	id, err := s.client.CreatePage(ctx, s.databaseID, properties)
	if err != nil {
		return "", fmt.Errorf("insert tracking row: %w", err)
	}
	s.logger.Debug("tracking row inserted", "pr", pr.Number, "row", id)
	return id, nil
}
