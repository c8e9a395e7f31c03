package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trm-labs/notionsync/internal/app"
	"github.com/trm-labs/notionsync/internal/config"
	"github.com/trm-labs/notionsync/internal/ghoutput"
)

// defaultMappingPath is the page mapping file used when nothing overrides it.
const defaultMappingPath = "page_mapping.yaml"

// newSyncCommand creates "sync", which runs the full pipeline once for the
// pull request described by the GitHub event payload.
func newSyncCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the mapped Notion page with the current pull request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if opts.MappingPath != "" {
				cfg.MappingPath = opts.MappingPath
			}
			if opts.SettingsPath != "" {
				cfg.SettingsPath = opts.SettingsPath
			}
			if cfg.MappingPath == "" {
				cfg.MappingPath = defaultMappingPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			mapping, err := config.LoadMapping(cfg.MappingPath)
			if err != nil {
				return err
			}
			settings, err := config.LoadSynthesis(cfg.SettingsPath)
			if err != nil {
				return err
			}

			res, err := app.Run(cmd.Context(), logger, app.Options{
				Config:   cfg,
				Mapping:  mapping,
				Settings: settings,
			})
			if err != nil {
				return err
			}

			prefix := res.Prefix
			if prefix == "" {
				prefix = "none"
			}
			outputs := map[string]string{
				"page_id":        res.PageID,
				"prefix":         prefix,
				"blocks_written": strconv.Itoa(res.BlocksWritten),
				"tracked":        strconv.FormatBool(res.Tracked),
			}
			if err := ghoutput.Write(outputs); err != nil {
				logger.Warn("write step outputs failed", "error", err)
			}
			if err := ghoutput.WriteSummary(syncSummary(res)); err != nil {
				logger.Warn("write step summary failed", "error", err)
			}
			return nil
		},
	}
}

// syncSummary renders a short markdown summary of a completed run.
func syncSummary(res app.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Notion sync for PR #%d\n\n", res.PR.Number)
	fmt.Fprintf(&b, "- Page: `%s`\n", res.PageID)
	fmt.Fprintf(&b, "- Blocks replaced: %d deleted, %d written\n", res.BlocksDeleted, res.BlocksWritten)
	if res.Tracked {
		b.WriteString("- Tracking row inserted\n")
	}
	return b.String()
}
