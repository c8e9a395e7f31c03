// Package prompt builds the synthesis prompt that merges existing page
// content with pull request information.
package prompt

import (
	"fmt"
	"strings"

	"github.com/trm-labs/notionsync/internal/event"
)

const (
	emptyPagePlaceholder = "(Page is currently empty)"
	emptyBodyPlaceholder = "(No description provided)"
)

// Build formats the existing page content and PR metadata into a single user
// prompt with fixed merge instructions. The instructions ask the model to
// preserve document structure, fold the PR into the relevant sections,
// maintain a "Recent Updates" section, and return only the final markdown.
func Build(existingContent string, pr event.PullRequest) string {
	content := existingContent
	if strings.TrimSpace(content) == "" {
		content = emptyPagePlaceholder
	}
	body := pr.Body
	if strings.TrimSpace(body) == "" {
		body = emptyBodyPlaceholder
	}

	var b strings.Builder

	b.WriteString("You are helping to update a technical specification document in Notion based on a GitHub Pull Request.\n\n")

	b.WriteString("EXISTING NOTION PAGE CONTENT:\n")
	b.WriteString(content)
	b.WriteString("\n\n")

	b.WriteString("PULL REQUEST INFORMATION:\n")
	fmt.Fprintf(&b, "- Title: %s\n", pr.Title)
	fmt.Fprintf(&b, "- Branch: %s\n", pr.Branch)
	fmt.Fprintf(&b, "- Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "- PR #%d: %s\n\n", pr.Number, pr.URL)

	b.WriteString("PR DESCRIPTION:\n")
	b.WriteString(body)
	b.WriteString("\n\n")

	b.WriteString("TASK:\n")
	b.WriteString("Synthesize and update the Notion page content by intelligently merging the PR information with the existing content.\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("1. Update relevant sections if the PR modifies existing components\n")
	b.WriteString("2. Add new sections for new components\n")
	b.WriteString("3. Maintain the overall document structure and flow\n")
	b.WriteString("4. Include a \"Recent Updates\" section that mentions this PR\n")
	b.WriteString("5. Use clear markdown formatting with proper headings and lists\n")
	b.WriteString("6. Be concise but comprehensive, and don't duplicate information unnecessarily\n")
	b.WriteString("7. Link to the PR in the main body of the page if it would provide useful context\n\n")
	b.WriteString("Return ONLY the updated page content in markdown format, with no preamble or commentary.")

	return b.String()
}
