// Package app contains the high-level orchestration of one sync run.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trm-labs/notionsync/internal/config"
	"github.com/trm-labs/notionsync/internal/event"
	"github.com/trm-labs/notionsync/internal/markdown"
	"github.com/trm-labs/notionsync/internal/notion"
	"github.com/trm-labs/notionsync/internal/openai"
	"github.com/trm-labs/notionsync/internal/prompt"
	"github.com/trm-labs/notionsync/internal/route"
	"github.com/trm-labs/notionsync/internal/tracker"
)

// Options bundles the validated inputs for a sync run.
type Options struct {
	// Config carries credentials, endpoints, and the event payload path.
	Config config.Config
	// Mapping is the branch-prefix routing table.
	Mapping config.Mapping
	// Settings are the synthesis generation parameters.
	Settings config.Synthesis
}

// Result reports what a successful run did, for step outputs and summaries.
type Result struct {
	// PR is the processed pull request.
	PR event.PullRequest
	// Prefix is the routing prefix, empty when the branch carried none.
	Prefix string
	// PageID is the canonical identifier of the updated page.
	PageID string
	// BlocksDeleted is the number of pre-existing blocks removed.
	BlocksDeleted int
	// BlocksWritten is the number of new blocks appended.
	BlocksWritten int
	// Tracked reports whether a tracking row was inserted this run.
	Tracked bool
}

// Run executes the sync pipeline exactly once: route the pull request to a
// page, read the page, synthesize merged content, convert it to blocks,
// replace the page content, and record the pull request in the tracking
// database. Any failure before the page is replaced aborts the run;
// tracking failures after a successful replacement are logged and do not
// fail the run.
func Run(ctx context.Context, logger *slog.Logger, opts Options) (Result, error) {
	var res Result

	logger.Info("loaded page mapping", "entries", len(opts.Mapping))

	pr, err := event.Load(opts.Config.EventPath)
	if err != nil {
		return res, err
	}
	res.PR = pr
	logger.Info("processing pull request", "number", pr.Number, "title", pr.Title, "branch", pr.Branch)

	prefix, hasPrefix := route.PrefixFromBranch(pr.Branch)
	res.Prefix = prefix
	if hasPrefix {
		logger.Info("extracted branch prefix", "prefix", prefix)
	} else {
		logger.Info("branch carries no routing prefix, using default page")
	}

	rawID, err := route.Resolve(opts.Mapping, prefix)
	if err != nil {
		return res, err
	}
	pageID, err := route.NormalizePageID(rawID)
	if err != nil {
		return res, err
	}
	res.PageID = pageID
	logger.Info("resolved target page", "page", pageID)

	client := notion.NewClient(notion.Options{
		BaseURL: opts.Config.NotionBaseURL,
		Token:   opts.Config.NotionAPIKey,
		Version: opts.Settings.NotionVersion,
	})

	children, err := client.ListAllChildren(ctx, pageID)
	if err != nil {
		return res, fmt.Errorf("fetch page content: %w", err)
	}
	existing := markdown.FromChildren(children)
	logger.Info("retrieved existing content", "blocks", len(children), "chars", len(existing))

	ai := openai.NewClient(opts.Config.OpenAIBaseURL, opts.Config.OpenAIAPIKey, opts.Settings)
	merged, err := ai.Generate(ctx, opts.Settings.SystemPrompt, prompt.Build(existing, pr))
	if err != nil {
		return res, fmt.Errorf("synthesize content: %w", err)
	}
	logger.Info("synthesized merged content", "chars", len(merged))

	blocks := markdown.ToBlocks(merged)
	logger.Info("converted markdown to blocks", "blocks", len(blocks))

	stats, err := client.ReplaceChildren(ctx, pageID, blocks)
	if err != nil {
		return res, fmt.Errorf("replace page content: %w", err)
	}
	res.BlocksDeleted = stats.Deleted
	res.BlocksWritten = len(blocks)
	logger.Info("page updated", "deleted", stats.Deleted, "written", len(blocks), "batches", stats.Batches)

	// The page update is the primary effect; a tracking failure must not
	// turn a successful run into a failed one.
	res.Tracked = trackBestEffort(ctx, logger, client, opts.Config.TrackingDatabaseID, pr, prefix)

	logger.Info("sync complete", "pr", pr.Number, "page", pageID)
	return res, nil
}

// trackBestEffort records the pull request in the tracking database when one
// is configured, skipping insertion when a row for the URL already exists.
func trackBestEffort(ctx context.Context, logger *slog.Logger, client *notion.Client, databaseID string, pr event.PullRequest, prefix string) bool {
	if databaseID == "" {
		logger.Info("no tracking database configured, skipping")
		return false
	}

	store, err := tracker.NewStore(client, logger, databaseID)
	if err != nil {
		logger.Warn("tracking skipped", "error", err)
		return false
	}

	exists, err := store.Exists(ctx, pr.URL)
	if err != nil {
		logger.Warn("tracking lookup failed", "error", err)
		return false
	}
	if exists {
		logger.Info("pull request already tracked, skipping", "pr", pr.Number)
		return false
	}

	rowID, err := store.Record(ctx, pr, prefix)
	if err != nil {
		logger.Warn("tracking insert failed", "error", err)
		return false
	}
	logger.Info("pull request tracked", "pr", pr.Number, "row", rowID)
	return true
}
