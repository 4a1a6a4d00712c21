// Package guide answers free-form travel questions from the catalog graph
// with Gemini.
package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"travelbrowser/internal/catalog/graph"
	"travelbrowser/internal/log"
)

// ModelConfig defines configuration for a Gemini model.
type ModelConfig struct {
	Name        string
	Temperature float32
	TopP        float32
	TopK        int32
}

// AvailableModels defines the available Gemini models and their configurations.
var AvailableModels = map[string]ModelConfig{
	"flash": {
		Name:        "gemini-flash-latest",
		Temperature: 0.4,
		TopP:        0.95,
		TopK:        40,
	},
	"pro": {
		Name:        "gemini-pro-latest",
		Temperature: 0.4,
		TopP:        0.95,
		TopK:        40,
	},
	"flash-2": {
		Name:        "gemini-2.0-flash",
		Temperature: 0.4,
		TopP:        0.95,
		TopK:        40,
	},
	"experimental": {
		Name:        "gemini-2.0-flash-exp",
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	},
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FallbackQuery returns every place with its country, weather and cover
// image. It is used when a generated query fails or returns nothing.
const FallbackQuery = `
	MATCH (c:Country)-[:HAS_PLACE]->(p:Place)
	OPTIONAL MATCH (p)-[:HAS_IMAGE]->(i:Image)
	WITH c, p, collect(i.url) AS images
	RETURN c.name AS country,
		   c.weather AS weather,
		   p.name AS place,
		   p.short_description AS summary,
		   images[0] AS cover
	ORDER BY c.seq, p.seq
	LIMIT 50
`

// Engine handles retrieval augmented generation over the catalog graph.
type Engine struct {
	graph graph.GraphClient
	gen   Generator
}

// NewEngine builds an engine on an arbitrary generator.
func NewEngine(g graph.GraphClient, gen Generator) *Engine {
	return &Engine{graph: g, gen: gen}
}

// Ask answers a question about the destinations.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	cypher, err := e.generateCypher(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to generate cypher: %w", err)
	}

	var rows []map[string]any
	if IsReadOnly(cypher) {
		rows, err = e.graph.ExecuteCypher(ctx, cypher)
	} else {
		err = fmt.Errorf("generated query is not read-only")
	}
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.WarningLog.Printf("guide query failed, using fallback: %v", err)
		}
		rows, err = e.graph.ExecuteCypher(ctx, FallbackQuery)
		if err != nil {
			return "", fmt.Errorf("failed to execute graph query: %w", err)
		}
	}

	answer, err := e.synthesizeAnswer(ctx, question, rows)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize answer: %w", err)
	}
	return answer, nil
}

func (e *Engine) generateCypher(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a Neo4j Cypher query expert. Convert the following question into a read-only Cypher query for a travel destination graph.

Graph Schema:
%s
Question: %s

Return ONLY the Cypher query, no explanation. Never write to the graph. Limit results to 20.`, graph.Schema, question)

	out, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return cleanCypherQuery(out), nil
}

func (e *Engine) synthesizeAnswer(ctx context.Context, question string, rows []map[string]any) (string, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are a friendly travel guide. Answer the question using only the destination data below.

Question: %s

Destination Data (from Neo4j):
%s

Keep the answer short. Mention places by name and the country they are in.
If the data does not cover the question, say so clearly.`, question, string(data))

	answer, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "Unable to generate a response from the available data.", nil
	}
	return answer, nil
}

// cleanCypherQuery removes markdown code fences from a generated query.
func cleanCypherQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.TrimPrefix(query, "```cypher")
	query = strings.TrimPrefix(query, "```")
	query = strings.TrimSuffix(query, "```")
	return strings.TrimSpace(query)
}

var writeClause = regexp.MustCompile(`(?i)\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP|LOAD\s+CSV|CALL\s+dbms)\b`)

// IsReadOnly reports whether query contains no write clauses.
func IsReadOnly(query string) bool {
	return strings.TrimSpace(query) != "" && !writeClause.MatchString(query)
}

// GeminiGenerator implements Generator on a Gemini model.
type GeminiGenerator struct {
	client *genai.Client
	config ModelConfig
}

// NewGeminiGenerator creates a Gemini client. Unknown model keys fall back
// to flash.
func NewGeminiGenerator(ctx context.Context, apiKey, modelKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, config: ResolveModel(modelKey)}, nil
}

// ResolveModel returns the configuration for a model key.
func ResolveModel(key string) ModelConfig {
	if cfg, ok := AvailableModels[key]; ok {
		return cfg
	}
	return AvailableModels["flash"]
}

func (g *GeminiGenerator) model() *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.config.Name)
	model.SetTemperature(g.config.Temperature)
	model.SetTopP(g.config.TopP)
	model.SetTopK(g.config.TopK)
	return model
}

// Generate sends prompt to the model and returns the first candidate's text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// ModelName returns the resolved model name.
func (g *GeminiGenerator) ModelName() string {
	return g.config.Name
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
