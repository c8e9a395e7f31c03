package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is an in-memory stand-in for a Notion page's children endpoints.
type fakePage struct {
	t        *testing.T
	existing []string
	deleted  []string
	appends  [][]string
}

func (f *fakePage) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/blocks/page-1/children", func(w http.ResponseWriter, _ *http.Request) {
		var results []string
		for _, id := range f.existing {
			results = append(results, fmt.Sprintf(
				`{"id":%q,"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"old"}]}}`, id))
		}
		fmt.Fprintf(w, `{"results":[%s],"has_more":false,"next_cursor":null}`, strings.Join(results, ","))
	})

	mux.HandleFunc("DELETE /v1/blocks/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/v1/blocks/")
		f.deleted = append(f.deleted, id)
		fmt.Fprint(w, `{}`)
	})

	mux.HandleFunc("PATCH /v1/blocks/page-1/children", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Children []struct {
				Type string `json:"type"`
			} `json:"children"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		batch := make([]string, len(body.Children))
		for i, c := range body.Children {
			batch[i] = c.Type
		}
		f.appends = append(f.appends, batch)
		fmt.Fprint(w, `{}`)
	})

	return mux
}

func TestReplaceChildrenDeletesThenAppends(t *testing.T) {
	page := &fakePage{t: t, existing: []string{"b1", "b2", "b3"}}
	server := httptest.NewServer(page.handler())
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	blocks := []Block{
		{Type: Heading1, Text: "Login"},
		{Type: Paragraph, Text: "New text"},
	}

	stats, err := client.ReplaceChildren(context.Background(), "page-1", blocks)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Deleted)
	assert.Equal(t, []string{"b1", "b2", "b3"}, page.deleted)
	assert.Equal(t, 1, stats.Batches)
	require.Len(t, page.appends, 1)
	assert.Equal(t, []string{"heading_1", "paragraph"}, page.appends[0])
}

func TestReplaceChildrenBatchesLargeWrites(t *testing.T) {
	page := &fakePage{t: t}
	server := httptest.NewServer(page.handler())
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	blocks := make([]Block, 150)
	for i := range blocks {
		blocks[i] = Block{Type: Paragraph, Text: fmt.Sprintf("line %d", i)}
	}

	stats, err := client.ReplaceChildren(context.Background(), "page-1", blocks)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Deleted)
	assert.Equal(t, 2, stats.Batches)
	require.Len(t, page.appends, 2)
	assert.Len(t, page.appends[0], 100)
	assert.Len(t, page.appends[1], 50)
}

func TestReplaceChildrenEmptyPageNoDeletes(t *testing.T) {
	page := &fakePage{t: t}
	server := httptest.NewServer(page.handler())
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	stats, err := client.ReplaceChildren(context.Background(), "page-1", []Block{{Type: Paragraph, Text: "only"}})
	require.NoError(t, err)

	assert.Empty(t, page.deleted)
	assert.Equal(t, ReplaceStats{Deleted: 0, Batches: 1}, stats)
}
