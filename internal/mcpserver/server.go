package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"travelbrowser/internal/catalog"
	"travelbrowser/internal/catalog/graph"
	"travelbrowser/internal/guide"
)

// Asker answers free-form questions, e.g. guide.Engine.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Server wraps the MCP server with travel catalog capabilities.
type Server struct {
	mcpServer   *mcp.Server
	source      catalog.Source
	browser     *Browser
	graphClient graph.GraphClient // nil when no graph is configured
	guide       Asker             // nil when no model is configured
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string
	Browser       BrowserConfig
}

// NewServer creates a new MCP server instance. The graph and guide tools are
// registered only when their collaborators are non-nil.
func NewServer(cfg Config, src catalog.Source, g graph.GraphClient, asker Asker) *Server {
	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	s := &Server{
		mcpServer:   mcp.NewServer(impl, nil),
		source:      src,
		browser:     NewBrowser(src, cfg.Browser),
		graphClient: g,
		guide:       asker,
	}
	s.registerTools()
	return s
}

// ListCountriesArgs defines the input for list_countries tool.
type ListCountriesArgs struct {
	Sort string `json:"sort,omitempty" jsonschema:"asc, desc or empty for the curated order"`
}

// ListCountriesResult wraps the countries.
type ListCountriesResult struct {
	Countries []catalog.Country `json:"countries" jsonschema:"destination countries"`
}

// ListPlacesArgs defines the input for list_places tool.
type ListPlacesArgs struct {
	Country string `json:"country" jsonschema:"country name"`
	Sort    string `json:"sort,omitempty" jsonschema:"asc, desc or empty for the curated order"`
}

// ListPlacesResult wraps the places of one country.
type ListPlacesResult struct {
	Places []catalog.Place `json:"places" jsonschema:"tourist places"`
}

// WeatherArgs defines the input for get_weather tool.
type WeatherArgs struct {
	Country string `json:"country" jsonschema:"country name"`
}

// GetPlaceArgs defines the input for get_place tool.
type GetPlaceArgs struct {
	Country string `json:"country" jsonschema:"country name"`
	Name    string `json:"name" jsonschema:"place name as returned by list_places"`
}

// AskGuideArgs defines the input for ask_guide tool.
type AskGuideArgs struct {
	Question string `json:"question" jsonschema:"the question to ask about the destinations"`
}

// AskGuideResult defines the output for ask_guide tool.
type AskGuideResult struct {
	Answer string `json:"answer" jsonschema:"AI-generated answer"`
}

// QueryGraphArgs defines the input for query_graph tool.
type QueryGraphArgs struct {
	Cypher string `json:"cypher" jsonschema:"read-only Cypher query to execute"`
}

// QueryGraphResult wraps graph query results.
type QueryGraphResult struct {
	Data []map[string]any `json:"data" jsonschema:"query results"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_countries",
		Description: "List the destination countries with their flags. Optional sort: asc or desc by name.",
	}, s.handleListCountries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_places",
		Description: "List the tourist places of a country with descriptions and image paths. Optional sort: asc or desc by name.",
	}, s.handleListPlaces)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get the current conditions and a seven day temperature forecast for a country.",
	}, s.handleGetWeather)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_place",
		Description: "Get one tourist place with its full description and all image paths.",
	}, s.handleGetPlace)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "browse",
		Description: "Drive a carousel browsing session: select a country chip, move to a card, step forward or back, " +
			"sort A-Z or Z-A, or scroll freely. Returns the selected place and the cards currently visible.",
	}, s.handleBrowse)

	if s.guide != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "ask_guide",
			Description: "Ask a travel question answered from the destination graph, e.g. 'Where is it warm this week?'.",
		}, s.handleAskGuide)
	}

	if s.graphClient != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "query_graph",
			Description: "Execute a read-only Cypher query on the destination graph. Nodes: Country, Place, Image. Relationships: HAS_PLACE, HAS_IMAGE.",
		}, s.handleQueryGraph)
	}
}

func (s *Server) handleListCountries(ctx context.Context, _ *mcp.CallToolRequest, args ListCountriesArgs) (*mcp.CallToolResult, ListCountriesResult, error) {
	order, err := catalog.ParseSortOrder(args.Sort)
	if err != nil {
		return nil, ListCountriesResult{}, err
	}
	countries, err := s.source.Countries(ctx, order)
	if err != nil {
		return nil, ListCountriesResult{}, fmt.Errorf("failed to list countries: %w", err)
	}
	return nil, ListCountriesResult{Countries: countries}, nil
}

func (s *Server) handleListPlaces(ctx context.Context, _ *mcp.CallToolRequest, args ListPlacesArgs) (*mcp.CallToolResult, ListPlacesResult, error) {
	if args.Country == "" {
		return nil, ListPlacesResult{}, fmt.Errorf("country is required")
	}
	order, err := catalog.ParseSortOrder(args.Sort)
	if err != nil {
		return nil, ListPlacesResult{}, err
	}
	places, err := s.source.Places(ctx, args.Country, order)
	if err != nil {
		return nil, ListPlacesResult{}, fmt.Errorf("failed to list places: %w", err)
	}
	return nil, ListPlacesResult{Places: places}, nil
}

func (s *Server) handleGetPlace(ctx context.Context, _ *mcp.CallToolRequest, args GetPlaceArgs) (*mcp.CallToolResult, catalog.Place, error) {
	if args.Country == "" || args.Name == "" {
		return nil, catalog.Place{}, fmt.Errorf("country and name are required")
	}
	p, err := catalog.FindPlace(ctx, s.source, args.Country, args.Name)
	if err != nil {
		return nil, catalog.Place{}, fmt.Errorf("failed to get place: %w", err)
	}
	return nil, p, nil
}

func (s *Server) handleGetWeather(ctx context.Context, _ *mcp.CallToolRequest, args WeatherArgs) (*mcp.CallToolResult, catalog.Weather, error) {
	w, err := s.source.Weather(ctx, args.Country)
	if err != nil {
		return nil, catalog.Weather{}, fmt.Errorf("failed to get weather: %w", err)
	}
	return nil, w, nil
}

func (s *Server) handleBrowse(ctx context.Context, _ *mcp.CallToolRequest, args BrowseArgs) (*mcp.CallToolResult, BrowseResult, error) {
	res, err := s.browser.Do(ctx, args)
	if err != nil {
		return nil, BrowseResult{}, fmt.Errorf("browse %s failed: %w", args.Action, err)
	}
	return nil, res, nil
}

func (s *Server) handleAskGuide(ctx context.Context, _ *mcp.CallToolRequest, args AskGuideArgs) (*mcp.CallToolResult, AskGuideResult, error) {
	answer, err := s.guide.Ask(ctx, args.Question)
	if err != nil {
		return nil, AskGuideResult{}, fmt.Errorf("guide query failed: %w", err)
	}
	return nil, AskGuideResult{Answer: answer}, nil
}

func (s *Server) handleQueryGraph(ctx context.Context, _ *mcp.CallToolRequest, args QueryGraphArgs) (*mcp.CallToolResult, QueryGraphResult, error) {
	if !guide.IsReadOnly(args.Cypher) {
		return nil, QueryGraphResult{}, fmt.Errorf("only read-only queries are allowed")
	}
	result, err := s.graphClient.ExecuteCypher(ctx, args.Cypher)
	if err != nil {
		return nil, QueryGraphResult{}, fmt.Errorf("cypher query failed: %w", err)
	}
	return nil, QueryGraphResult{Data: result}, nil
}

// Start starts the MCP server using stdio transport.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "Starting travelbrowser MCP server on stdio...\n")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session on an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
