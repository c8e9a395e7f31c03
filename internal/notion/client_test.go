package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trm-labs/notionsync/internal/faults"
)

func TestListAllChildrenPaginatesToExhaustion(t *testing.T) {
	pages := []string{
		`{"results":[{"id":"b1","type":"heading_1","heading_1":{"rich_text":[{"plain_text":"One"}]}}],"has_more":true,"next_cursor":"c1"}`,
		`{"results":[{"id":"b2","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"Two"}]}}],"has_more":true,"next_cursor":"c2"}`,
		`{"results":[{"id":"b3","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"Three"}]}}],"has_more":false,"next_cursor":null}`,
	}

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/blocks/page-1/children", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("page_size"))

		switch calls {
		case 0:
			assert.Empty(t, r.URL.Query().Get("start_cursor"))
		case 1:
			assert.Equal(t, "c1", r.URL.Query().Get("start_cursor"))
		case 2:
			assert.Equal(t, "c2", r.URL.Query().Get("start_cursor"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pages[calls]))
		calls++
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	children, err := client.ListAllChildren(context.Background(), "page-1")
	require.NoError(t, err)
	require.Equal(t, 3, calls)

	require.Len(t, children, 3)
	assert.Equal(t, []string{"b1", "b2", "b3"}, []string{children[0].ID, children[1].ID, children[2].ID})
	assert.Equal(t, "One", children[0].Text)
	assert.Equal(t, Heading1, children[0].Type)
}

func TestClientSendsAuthAndVersionHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		_, _ = w.Write([]byte(`{"results":[],"has_more":false}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	_, err := client.ListChildren(context.Background(), "p", "", 0)
	require.NoError(t, err)
}

func TestClientDecodesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"object_not_found","message":"Could not find block"}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	err := client.DeleteBlock(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, faults.IsTransport(err))

	var terr *faults.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "notion", terr.Service)
	assert.Equal(t, http.StatusNotFound, terr.Status)
	assert.Equal(t, "object_not_found", terr.Code)
	assert.Equal(t, "Could not find block", terr.Message)
}

func TestChildUnmarshalJoinsRichTextRuns(t *testing.T) {
	raw := `{"id":"b9","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"Hello, "},{"plain_text":"world"}]}}`

	var child Child
	require.NoError(t, json.Unmarshal([]byte(raw), &child))
	assert.Equal(t, "b9", child.ID)
	assert.Equal(t, Paragraph, child.Type)
	assert.Equal(t, "Hello, world", child.Text)
}

func TestChildUnmarshalToleratesTextlessPayloads(t *testing.T) {
	raw := `{"id":"d1","type":"divider","divider":{}}`

	var child Child
	require.NoError(t, json.Unmarshal([]byte(raw), &child))
	assert.Equal(t, BlockType("divider"), child.Type)
	assert.Empty(t, child.Text)
}

func TestBlockMarshalWireFormat(t *testing.T) {
	raw, err := json.Marshal(Block{Type: Heading2, Text: "Flows"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "block", decoded["object"])
	assert.Equal(t, "heading_2", decoded["type"])

	payload, ok := decoded["heading_2"].(map[string]any)
	require.True(t, ok, "expected heading_2 payload, got %v", decoded)
	runs, ok := payload["rich_text"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	assert.Equal(t, "text", run["type"])
	assert.Equal(t, map[string]any{"content": "Flows"}, run["text"])
}

func TestQueryDatabaseByURLFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/databases/db-1/query", r.URL.Path)

		var body struct {
			Filter struct {
				Property string `json:"property"`
				URL      struct {
					Equals string `json:"equals"`
				} `json:"url"`
			} `json:"filter"`
			PageSize int `json:"page_size"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Link", body.Filter.Property)
		assert.Equal(t, "https://github.com/o/r/pull/7", body.Filter.URL.Equals)
		assert.Equal(t, 1, body.PageSize)

		fmt.Fprint(w, `{"results":[{"id":"row-1"}]}`)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	results, err := client.QueryDatabaseByURL(context.Background(), "db-1", "Link", "https://github.com/o/r/pull/7", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "row-1", results[0].ID)
}
