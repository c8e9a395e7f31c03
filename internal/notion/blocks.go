package notion

import (
	"encoding/json"
	"strings"
)

// BlockType is the store-native type tag of a page content block.
type BlockType string

// Block types the sync pipeline produces and recognizes. Anything else read
// from a page is rendered as plain text when it carries rich text.
const (
	Heading1  BlockType = "heading_1"
	Heading2  BlockType = "heading_2"
	Heading3  BlockType = "heading_3"
	Bulleted  BlockType = "bulleted_list_item"
	Numbered  BlockType = "numbered_list_item"
	Paragraph BlockType = "paragraph"
)

// Block is a write-direction content block: a type tag plus its plain-text
// payload. Marshalling produces the nested rich_text structure the API wants.
type Block struct {
	// Type is the block type tag.
	Type BlockType
	// Text is the plain-text payload.
	Text string
}

// MarshalJSON renders the block in Notion's append-children wire format.
func (b Block) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"rich_text": []map[string]any{
			{
				"type": "text",
				"text": map[string]string{"content": b.Text},
			},
		},
	}
	return json.Marshal(map[string]any{
		"object":       "block",
		"type":         string(b.Type),
		string(b.Type): body,
	})
}

// Child is a read-direction block returned by a children listing. ID is kept
// so existing blocks can be deleted before a page is rewritten.
type Child struct {
	// ID is the block identifier.
	ID string
	// Type is the block type tag.
	Type BlockType
	// Text is the concatenated plain text of the block's rich text runs.
	Text string
}

// UnmarshalJSON flattens the API's per-type payload: it reads the type tag,
// then joins the plain_text fragments of that type's rich_text runs.
func (c *Child) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if idRaw, ok := raw["id"]; ok {
		if err := json.Unmarshal(idRaw, &c.ID); err != nil {
			return err
		}
	}

	var typ string
	if typRaw, ok := raw["type"]; ok {
		if err := json.Unmarshal(typRaw, &typ); err != nil {
			return err
		}
	}
	c.Type = BlockType(typ)
	c.Text = ""
	if typ == "" {
		return nil
	}

	payloadRaw, ok := raw[typ]
	if !ok {
		return nil
	}
	var payload struct {
		RichText []struct {
			PlainText string `json:"plain_text"`
		} `json:"rich_text"`
	}
	if err := json.Unmarshal(payloadRaw, &payload); err != nil {
		// Blocks whose payload carries no rich_text (dividers, images) are
		// skipped by the renderer; treat them as empty rather than failing.
		return nil
	}

	var sb strings.Builder
	for _, run := range payload.RichText {
		sb.WriteString(run.PlainText)
	}
	c.Text = sb.String()
	return nil
}

// ChildrenPage is one page of a block-children listing.
type ChildrenPage struct {
	// Blocks holds the listed child blocks in page order.
	Blocks []Child `json:"results"`
	// HasMore reports whether another page follows.
	HasMore bool `json:"has_more"`
	// NextCursor is the continuation cursor for the next page.
	NextCursor string `json:"next_cursor"`
}
