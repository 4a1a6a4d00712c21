package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"travelbrowser/internal/catalog"
	"travelbrowser/internal/catalog/relational"
)

// MockSource implements catalog.Source over the bundled seed.
type MockSource struct {
	Seed catalog.Seed
	Err  error
	cmp  *catalog.Comparator
}

func NewMockSource() *MockSource {
	return &MockSource{Seed: catalog.SeedData(), cmp: catalog.NewComparator("en")}
}

func (m *MockSource) Countries(ctx context.Context, order catalog.SortOrder) ([]catalog.Country, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := slices.Clone(m.Seed.Countries)
	m.cmp.SortCountries(order, out)
	return out, nil
}

func (m *MockSource) Places(ctx context.Context, country string, order catalog.SortOrder) ([]catalog.Place, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !slices.ContainsFunc(m.Seed.Countries, func(c catalog.Country) bool { return c.Name == country }) {
		return nil, fmt.Errorf("%q: %w", country, catalog.ErrCountryNotFound)
	}
	out := []catalog.Place{}
	for _, p := range m.Seed.Places {
		if p.Country == country {
			out = append(out, p)
		}
	}
	m.cmp.SortPlaces(order, out)
	return out, nil
}

func (m *MockSource) Weather(ctx context.Context, country string) (catalog.Weather, error) {
	for _, w := range m.Seed.Weather {
		if w.Country == country {
			return w, nil
		}
	}
	return catalog.Weather{}, catalog.ErrNoWeather
}

// MockGraphClient implements graph.GraphClient for testing
type MockGraphClient struct {
	CypherResult []map[string]any
	CypherErr    error
	Queries      []string
}

func (m *MockGraphClient) IngestCatalog(ctx context.Context, data catalog.Seed) error { return nil }
func (m *MockGraphClient) Reset(ctx context.Context) error                            { return nil }
func (m *MockGraphClient) Close(ctx context.Context) error                            { return nil }

func (m *MockGraphClient) ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error) {
	m.Queries = append(m.Queries, query)
	if m.CypherErr != nil {
		return nil, m.CypherErr
	}
	return m.CypherResult, nil
}

type MockAsker struct {
	Answer string
	Err    error
}

func (m *MockAsker) Ask(ctx context.Context, question string) (string, error) {
	return m.Answer, m.Err
}

func newTestServer(g *MockGraphClient, a *MockAsker) *Server {
	cfg := Config{ServerName: "travelbrowser-test", ServerVersion: "test", Browser: DefaultBrowserConfig()}
	var asker Asker
	if a != nil {
		asker = a
	}
	if g == nil {
		return NewServer(cfg, NewMockSource(), nil, asker)
	}
	return NewServer(cfg, NewMockSource(), g, asker)
}

func intPtr(i int) *int { return &i }

func TestHandleListCountries(t *testing.T) {
	s := newTestServer(nil, nil)
	ctx := context.Background()

	_, result, err := s.handleListCountries(ctx, nil, ListCountriesArgs{Sort: "asc"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got := catalog.Names(result.Countries, catalog.CountryName)
	want := []string{"Egypt", "Italy", "Japan", "Norway", "Peru"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if _, _, err := s.handleListCountries(ctx, nil, ListCountriesArgs{Sort: "sideways"}); err == nil {
		t.Error("Expected error for invalid sort")
	}
}

func TestHandleListPlaces(t *testing.T) {
	s := newTestServer(nil, nil)
	ctx := context.Background()

	_, result, err := s.handleListPlaces(ctx, nil, ListPlacesArgs{Country: "Egypt"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Places) != 3 || result.Places[0].Name != "Pyramids of Giza" {
		t.Errorf("Unexpected places: %v", catalog.Names(result.Places, catalog.PlaceName))
	}

	if _, _, err := s.handleListPlaces(ctx, nil, ListPlacesArgs{}); err == nil {
		t.Error("Expected error without country")
	}
	_, _, err = s.handleListPlaces(ctx, nil, ListPlacesArgs{Country: "Atlantis"})
	if !errors.Is(err, catalog.ErrCountryNotFound) {
		t.Errorf("Expected ErrCountryNotFound, got %v", err)
	}
}

func TestHandleGetWeather(t *testing.T) {
	s := newTestServer(nil, nil)

	_, w, err := s.handleGetWeather(context.Background(), nil, WeatherArgs{Country: "Norway"})
	if err != nil {
		t.Fatal(err)
	}
	if w.Description != "Overcast" {
		t.Errorf("Expected Overcast, got %q", w.Description)
	}

	if _, _, err := s.handleGetWeather(context.Background(), nil, WeatherArgs{Country: "Atlantis"}); !errors.Is(err, catalog.ErrNoWeather) {
		t.Errorf("Expected ErrNoWeather, got %v", err)
	}
}

func TestHandleGetPlace(t *testing.T) {
	ctx := context.Background()

	db, err := relational.NewInMemoryDB()
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	defer db.Close()
	repo := relational.NewRepo(db.DB())
	if err := repo.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Seed(ctx, catalog.SeedData()); err != nil {
		t.Fatal(err)
	}

	sources := map[string]catalog.Source{
		"direct lookup": repo,
		"scan":          NewMockSource(),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			s := NewServer(Config{ServerName: "travelbrowser-test", Browser: DefaultBrowserConfig()}, src, nil, nil)

			_, p, err := s.handleGetPlace(ctx, nil, GetPlaceArgs{Country: "Italy", Name: "Colosseum"})
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if p.Country != "Italy" || len(p.Images) != 2 || p.Description == "" {
				t.Errorf("Unexpected place: %+v", p)
			}

			_, _, err = s.handleGetPlace(ctx, nil, GetPlaceArgs{Country: "Italy", Name: "Atlantis"})
			if !errors.Is(err, catalog.ErrPlaceNotFound) {
				t.Errorf("Expected ErrPlaceNotFound, got %v", err)
			}
			if _, _, err := s.handleGetPlace(ctx, nil, GetPlaceArgs{Country: "Italy"}); err == nil {
				t.Error("Expected error without a name")
			}
		})
	}
}

func TestHandleBrowse(t *testing.T) {
	s := newTestServer(nil, nil)
	ctx := context.Background()

	steps := []struct {
		name         string
		args         BrowseArgs
		wantCountry  string
		wantSelected string
		wantIndex    int
		wantVisible  []int
	}{
		{"initial state", BrowseArgs{Action: "state"}, "Italy", "Colosseum", 0, []int{0, 1, 2}},
		{"forward arrow", BrowseArgs{Action: "forward"}, "Italy", "Amalfi Coast", 1, []int{1, 2, 3}},
		{"move to the unreachable last card", BrowseArgs{Action: "move", Index: intPtr(4)}, "Italy", "Florence", 4, []int{3, 4}},
		{"forward at the end is ignored", BrowseArgs{Action: "forward"}, "Italy", "Florence", 4, []int{3, 4}},
		{"free scroll back", BrowseArgs{Action: "scroll", Delta: -40}, "Italy", "Amalfi Coast", 1, []int{1, 2, 3}},
		{"sort keeps the place", BrowseArgs{Action: "sort", Order: "desc"}, "Italy", "Amalfi Coast", 4, []int{3, 4}},
		{"country chip by name", BrowseArgs{Action: "select_country", Country: "japan"}, "Japan", "Shibuya Crossing", 0, []int{0, 1, 2}},
	}

	for _, step := range steps {
		_, res, err := s.handleBrowse(ctx, nil, step.args)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		if res.Country != step.wantCountry || res.Selected != step.wantSelected || res.SelectedIndex != step.wantIndex {
			t.Errorf("%s: got %s/%s[%d], want %s/%s[%d]", step.name,
				res.Country, res.Selected, res.SelectedIndex, step.wantCountry, step.wantSelected, step.wantIndex)
		}
		if !slices.Equal(res.Visible, step.wantVisible) {
			t.Errorf("%s: visible %v, want %v", step.name, res.Visible, step.wantVisible)
		}
	}
}

func TestHandleBrowse_BadArgs(t *testing.T) {
	s := newTestServer(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		args BrowseArgs
	}{
		{"unknown action", BrowseArgs{Action: "teleport"}},
		{"move without index", BrowseArgs{Action: "move"}},
		{"unknown country", BrowseArgs{Action: "select_country", Country: "Atlantis"}},
		{"country without name", BrowseArgs{Action: "select_country"}},
		{"bad sort", BrowseArgs{Action: "sort", Order: "up"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.handleBrowse(ctx, nil, tt.args); err == nil {
				t.Error("Expected error")
			}
		})
	}

	_, res, err := s.handleBrowse(ctx, nil, BrowseArgs{Action: "move", Index: intPtr(99)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || res.SelectedIndex != 0 {
		t.Errorf("Out-of-range move must be ignored, got %+v", res)
	}
}

func TestHandleBrowse_SourceError(t *testing.T) {
	src := NewMockSource()
	src.Err = errors.New("database locked")
	s := NewServer(Config{Browser: DefaultBrowserConfig()}, src, nil, nil)

	_, _, err := s.handleBrowse(context.Background(), nil, BrowseArgs{Action: "state"})
	if !errors.Is(err, src.Err) {
		t.Errorf("Expected source error, got %v", err)
	}

	src.Err = nil
	_, res, err := s.handleBrowse(context.Background(), nil, BrowseArgs{Action: "state"})
	if err != nil {
		t.Fatalf("Expected recovery after the source heals, got %v", err)
	}
	if res.Selected != "Colosseum" {
		t.Errorf("Expected Colosseum, got %q", res.Selected)
	}
}

func TestHandleAskGuide(t *testing.T) {
	s := newTestServer(nil, &MockAsker{Answer: "Visit Luxor."})

	_, result, err := s.handleAskGuide(context.Background(), nil, AskGuideArgs{Question: "Temples?"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Answer != "Visit Luxor." {
		t.Errorf("Unexpected answer %q", result.Answer)
	}

	s = newTestServer(nil, &MockAsker{Err: errors.New("quota")})
	if _, _, err := s.handleAskGuide(context.Background(), nil, AskGuideArgs{Question: "Temples?"}); err == nil {
		t.Error("Expected error from guide")
	}
}

func TestHandleQueryGraph(t *testing.T) {
	mockGraph := &MockGraphClient{CypherResult: []map[string]any{{"name": "Kyoto"}}}
	s := newTestServer(mockGraph, nil)
	ctx := context.Background()

	_, result, err := s.handleQueryGraph(ctx, nil, QueryGraphArgs{Cypher: "MATCH (p:Place) RETURN p.name AS name"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0]["name"] != "Kyoto" {
		t.Errorf("Unexpected data %v", result.Data)
	}

	if _, _, err := s.handleQueryGraph(ctx, nil, QueryGraphArgs{Cypher: "MATCH (n) DETACH DELETE n"}); err == nil {
		t.Error("Expected write query to be refused")
	}
	if len(mockGraph.Queries) != 1 {
		t.Errorf("Refused query must not reach the graph, got %v", mockGraph.Queries)
	}

	mockGraph.CypherErr = errors.New("syntax error")
	if _, _, err := s.handleQueryGraph(ctx, nil, QueryGraphArgs{Cypher: "MATCH (n RETURN n"}); err == nil {
		t.Error("Expected error for invalid cypher")
	}
}

func TestRegisteredTools(t *testing.T) {
	tests := []struct {
		name  string
		graph *MockGraphClient
		asker *MockAsker
		want  []string
	}{
		{"catalog only", nil, nil, []string{"browse", "get_place", "get_weather", "list_countries", "list_places"}},
		{"with graph and guide", &MockGraphClient{}, &MockAsker{}, []string{"ask_guide", "browse", "get_place", "get_weather", "list_countries", "list_places", "query_graph"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestServer(tt.graph, tt.asker)

			clientTransport, serverTransport := mcp.NewInMemoryTransports()
			serverSession, err := s.Connect(ctx, serverTransport)
			if err != nil {
				t.Fatalf("server connect failed: %v", err)
			}
			defer serverSession.Close()

			client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
			session, err := client.Connect(ctx, clientTransport, nil)
			if err != nil {
				t.Fatalf("client connect failed: %v", err)
			}
			defer session.Close()

			var names []string
			for tool, err := range session.Tools(ctx, nil) {
				if err != nil {
					t.Fatalf("list tools failed: %v", err)
				}
				names = append(names, tool.Name)
			}
			slices.Sort(names)
			if !slices.Equal(names, tt.want) {
				t.Errorf("Expected tools %v, got %v", tt.want, names)
			}

			result, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "browse",
				Arguments: map[string]any{"action": "forward"},
			})
			if err != nil {
				t.Fatalf("call browse failed: %v", err)
			}
			if result.IsError {
				t.Errorf("browse returned a tool error: %+v", result.Content)
			}
		})
	}
}
