package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"travelbrowser/internal/catalog"
)

type MockGenerator struct {
	Responses []string
	Err       error
	Prompts   []string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	out := m.Responses[0]
	m.Responses = m.Responses[1:]
	return out, nil
}

type MockGraphClient struct {
	Results map[string][]map[string]any
	Err     error
	Queries []string
}

func (m *MockGraphClient) Close(ctx context.Context) error { return nil }
func (m *MockGraphClient) Reset(ctx context.Context) error { return nil }
func (m *MockGraphClient) IngestCatalog(ctx context.Context, data catalog.Seed) error {
	return nil
}

func (m *MockGraphClient) ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results[query], nil
}

const kyotoQuery = "MATCH (p:Place {name: 'Kyoto'}) RETURN p.description AS d"

func TestAskUsesGeneratedQuery(t *testing.T) {
	g := &MockGraphClient{Results: map[string][]map[string]any{
		kyotoQuery: {{"d": "Former imperial capital"}},
	}}
	gen := &MockGenerator{Responses: []string{"```cypher\n" + kyotoQuery + "\n```", "Kyoto was the imperial capital."}}

	answer, err := NewEngine(g, gen).Ask(context.Background(), "What is Kyoto?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "Kyoto was the imperial capital." {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(g.Queries) != 1 || g.Queries[0] != kyotoQuery {
		t.Errorf("expected the cleaned query to run once, got %v", g.Queries)
	}
	if !strings.Contains(gen.Prompts[1], "Former imperial capital") {
		t.Error("expected graph rows in the synthesis prompt")
	}
}

func TestAskFallsBackOnEmptyResult(t *testing.T) {
	g := &MockGraphClient{Results: map[string][]map[string]any{
		FallbackQuery: {{"place": "Venice"}},
	}}
	gen := &MockGenerator{Responses: []string{"MATCH (n:Nothing) RETURN n", "Try Venice."}}

	answer, err := NewEngine(g, gen).Ask(context.Background(), "Somewhere with canals?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Try Venice." {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(g.Queries) != 2 || g.Queries[1] != FallbackQuery {
		t.Errorf("expected fallback query, got %v", g.Queries)
	}
}

func TestAskRefusesWriteQueries(t *testing.T) {
	g := &MockGraphClient{Results: map[string][]map[string]any{
		FallbackQuery: {{"place": "Luxor"}},
	}}
	gen := &MockGenerator{Responses: []string{"MATCH (n) DETACH DELETE n", "Luxor."}}

	if _, err := NewEngine(g, gen).Ask(context.Background(), "Delete everything"); err != nil {
		t.Fatal(err)
	}
	for _, q := range g.Queries {
		if strings.Contains(q, "DELETE") {
			t.Fatalf("write query reached the graph: %q", q)
		}
	}
}

func TestAskErrors(t *testing.T) {
	if _, err := NewEngine(&MockGraphClient{}, &MockGenerator{}).Ask(context.Background(), "  "); err == nil {
		t.Error("expected error for empty question")
	}

	genErr := errors.New("quota")
	_, err := NewEngine(&MockGraphClient{}, &MockGenerator{Err: genErr}).Ask(context.Background(), "hi")
	if !errors.Is(err, genErr) {
		t.Errorf("expected generator error, got %v", err)
	}

	graphErr := errors.New("graph down")
	gen := &MockGenerator{Responses: []string{"MATCH (c:Country) RETURN c"}}
	_, err = NewEngine(&MockGraphClient{Err: graphErr}, gen).Ask(context.Background(), "hi")
	if !errors.Is(err, graphErr) {
		t.Errorf("expected graph error, got %v", err)
	}
}

func TestEmptySynthesis(t *testing.T) {
	g := &MockGraphClient{Results: map[string][]map[string]any{FallbackQuery: {{"x": 1}}}}
	gen := &MockGenerator{Responses: []string{"", "   "}}

	answer, err := NewEngine(g, gen).Ask(context.Background(), "anything")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(answer, "Unable to generate") {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestCleanCypherQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MATCH (n) RETURN n", "MATCH (n) RETURN n"},
		{"```cypher\nMATCH (n) RETURN n\n```", "MATCH (n) RETURN n"},
		{"```\nMATCH (n) RETURN n```", "MATCH (n) RETURN n"},
		{"  \n MATCH (n) RETURN n \n", "MATCH (n) RETURN n"},
	}
	for _, tt := range tests {
		if got := cleanCypherQuery(tt.in); got != tt.want {
			t.Errorf("cleanCypherQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"MATCH (c:Country) RETURN c.name", true},
		{"MATCH (p:Place) WHERE p.name CONTAINS 'sunset' RETURN p", true},
		{"", false},
		{"CREATE (n:Country {name: 'X'})", false},
		{"MATCH (n) detach delete n", false},
		{"MATCH (p:Place) SET p.name = 'x'", false},
		{"LOAD CSV FROM 'file:///x' AS row RETURN row", false},
	}
	for _, tt := range tests {
		if got := IsReadOnly(tt.query); got != tt.want {
			t.Errorf("IsReadOnly(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestResolveModel(t *testing.T) {
	if ResolveModel("pro").Name != "gemini-pro-latest" {
		t.Error("expected pro model")
	}
	if ResolveModel("unknown").Name != AvailableModels["flash"].Name {
		t.Error("expected flash fallback")
	}
}
