// Package markdown converts between plain markdown text and Notion content
// blocks.
//
// The conversion is deliberately line-oriented and shallow: headings up to
// level three, two list kinds, and paragraphs. Nested lists, inline
// emphasis, tables, and code fences degrade to plain paragraphs.
package markdown

import (
	"regexp"
	"strings"

	"github.com/trm-labs/notionsync/internal/notion"
)

// bulletGlyph is the bullet prefix Notion renders for bulleted list items.
const bulletGlyph = "•"

var numberedRe = regexp.MustCompile(`^\d+\.\s+`)

// ToBlocks parses markdown into content blocks, one block per non-empty
// line. Blank lines produce no block and do not merge or terminate their
// neighbors.
func ToBlocks(md string) []notion.Block {
	var blocks []notion.Block
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, notion.Block{Type: notion.Heading1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, notion.Block{Type: notion.Heading2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, notion.Block{Type: notion.Heading3, Text: line[4:]})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, notion.Block{Type: notion.Bulleted, Text: line[2:]})
		case strings.HasPrefix(line, bulletGlyph+" "):
			blocks = append(blocks, notion.Block{Type: notion.Bulleted, Text: line[len(bulletGlyph)+1:]})
		case numberedRe.MatchString(line):
			marker := numberedRe.FindString(line)
			blocks = append(blocks, notion.Block{Type: notion.Numbered, Text: line[len(marker):]})
		default:
			blocks = append(blocks, notion.Block{Type: notion.Paragraph, Text: line})
		}
	}
	return blocks
}

// FromChildren renders read-direction blocks as newline-joined text lines.
// Heading levels map to #/##/### prefixes, bulleted items to the bullet
// glyph, numbered items to a literal "1. " (the store auto-numbers on its
// side, so the original ordinal is not preserved). Any other block type with
// non-empty text is emitted bare; blocks with empty text are skipped.
func FromChildren(children []notion.Child) string {
	var lines []string
	for _, child := range children {
		if child.Text == "" {
			continue
		}
		switch child.Type {
		case notion.Heading1:
			lines = append(lines, "# "+child.Text)
		case notion.Heading2:
			lines = append(lines, "## "+child.Text)
		case notion.Heading3:
			lines = append(lines, "### "+child.Text)
		case notion.Bulleted:
			lines = append(lines, bulletGlyph+" "+child.Text)
		case notion.Numbered:
			lines = append(lines, "1. "+child.Text)
		default:
			lines = append(lines, child.Text)
		}
	}
	return strings.Join(lines, "\n")
}
