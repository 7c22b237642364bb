package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jwulff/briefcast/internal/logging"
	"github.com/jwulff/briefcast/internal/podcast"
)

type staticSource struct {
	list []podcast.Podcast
	err  error
}

func (s staticSource) Load() ([]podcast.Podcast, error) { return s.list, s.err }

func sample() []podcast.Podcast {
	return []podcast.Podcast{
		{ID: 3, Name: "Market Wrap", Description: "Sensex closed higher"},
		{ID: 2, Name: "Weekly", Description: "Rupee outlook for the week"},
		{ID: 1, Name: "Budget Special", Description: "What the budget means for markets"},
	}
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("content type %T", res.Content[0])
	return ""
}

func decode(t *testing.T, text string) []podcast.Podcast {
	t.Helper()
	var list []podcast.Podcast
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return list
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	s := New(staticSource{list: sample()}, "test", logging.NewNop())

	res, err := s.handleSearch(context.Background(), call(ToolSearch, map[string]any{"query": "MARKET"}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	got := decode(t, resultText(t, res))
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("matches = %+v", got)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	s := New(staticSource{list: sample()}, "test", logging.NewNop())

	res, err := s.handleSearch(context.Background(), call(ToolSearch, map[string]any{}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if !res.IsError {
		t.Error("missing query should be a tool error")
	}
}

func TestSearchNoMatches(t *testing.T) {
	s := New(staticSource{list: sample()}, "test", logging.NewNop())

	res, _ := s.handleSearch(context.Background(), call(ToolSearch, map[string]any{"query": "crypto"}))
	if text := resultText(t, res); text != "No podcasts found." {
		t.Errorf("text = %q", text)
	}
}

func TestListLimit(t *testing.T) {
	s := New(staticSource{list: sample()}, "test", logging.NewNop())

	res, err := s.handleList(context.Background(), call(ToolList, map[string]any{"limit": 2.0}))
	if err != nil {
		t.Fatalf("handleList: %v", err)
	}
	got := decode(t, resultText(t, res))
	if len(got) != 2 || got[0].ID != 3 {
		t.Errorf("list = %+v", got)
	}

	res, _ = s.handleList(context.Background(), call(ToolList, nil))
	if got := decode(t, resultText(t, res)); len(got) != 3 {
		t.Errorf("default limit returned %d", len(got))
	}
}

func TestLoadErrorIsToolError(t *testing.T) {
	s := New(staticSource{err: errors.New("database is locked")}, "test", logging.NewNop())

	res, err := s.handleList(context.Background(), call(ToolList, nil))
	if err != nil {
		t.Fatalf("handleList: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "database is locked") {
		t.Errorf("result = %+v", res)
	}
}

func TestMCPRegistersTools(t *testing.T) {
	s := New(staticSource{}, "test", logging.NewNop())
	if s.MCP() == nil {
		t.Fatal("MCP returned nil")
	}
}
