package notion

import (
	"context"
	"fmt"
)

// ReplaceStats reports what a ReplaceChildren call did.
type ReplaceStats struct {
	// Deleted is the number of pre-existing blocks removed.
	Deleted int
	// Batches is the number of append requests issued.
	Batches int
}

// ReplaceChildren makes the page's content equal to blocks: it lists the
// current children (paginating to exhaustion so oversized pages are fully
// cleared), deletes them one by one, then appends the new blocks in order in
// batches within the per-request limit.
//
// The steps are not transactional. A failure after deletion has started
// leaves the page partially cleared or partially repopulated; callers accept
// this for a single-writer, human-supervised job.
func (c *Client) ReplaceChildren(ctx context.Context, pageID string, blocks []Block) (ReplaceStats, error) {
	var stats ReplaceStats

	existing, err := c.ListAllChildren(ctx, pageID)
	if err != nil {
		return stats, fmt.Errorf("list existing blocks: %w", err)
	}

	for _, child := range existing {
		if err := c.DeleteBlock(ctx, child.ID); err != nil {
			return stats, fmt.Errorf("delete block %s: %w", child.ID, err)
		}
		stats.Deleted++
	}

	for start := 0; start < len(blocks); start += maxChildrenPerAppend {
		end := start + maxChildrenPerAppend
		if end > len(blocks) {
			end = len(blocks)
		}
		if err := c.AppendChildren(ctx, pageID, blocks[start:end]); err != nil {
			return stats, fmt.Errorf("append blocks %d..%d: %w", start, end-1, err)
		}
		stats.Batches++
	}
	return stats, nil
}
