// Package graph mirrors the travel catalog into Neo4j so it can be queried
// with Cypher.
package graph

import (
	"context"
	"fmt"
	"time"

	"travelbrowser/internal/catalog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Schema describes the mirrored graph. It is handed to the guide's
// query generator verbatim.
const Schema = `
Nodes:
  (:Country {name, flag, code, seq, weather, forecast})
  (:Place {name, country, short_description, description, seq})
  (:Image {url, ordinal})
Relationships:
  (:Country)-[:HAS_PLACE]->(:Place)
  (:Place)-[:HAS_IMAGE]->(:Image)
Notes:
  - Country.weather is a short description such as "Sunny".
  - Country.forecast is a list of daily highs in Celsius.
  - seq is the curated display order.
`

// GraphClient defines the interface for graph database operations.
type GraphClient interface {
	Close(ctx context.Context) error
	Reset(ctx context.Context) error
	IngestCatalog(ctx context.Context, data catalog.Seed) error
	ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error)
}

// Neo4jClient implements GraphClient for Neo4j.
type Neo4jClient struct {
	driver neo4j.DriverWithContext
	dbName string
}

// NewNeo4jClient creates a new Neo4j client.
func NewNeo4jClient(uri, username, password, dbName string) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	return &Neo4jClient{
		driver: driver,
		dbName: dbName,
	}, nil
}

func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Reset deletes the mirrored catalog.
func (c *Neo4jClient) Reset(ctx context.Context) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.dbName})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, "MATCH (n) WHERE n:Country OR n:Place OR n:Image DETACH DELETE n", nil)
	})
	return err
}

// IngestCatalog merges the catalog into the graph. Places and images that
// are no longer in data are removed.
func (c *Neo4jClient) IngestCatalog(ctx context.Context, data catalog.Seed) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.dbName})
	defer session.Close(ctx)

	params := ingestParams(data)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := mergeCountries(ctx, tx, params["countries"]); err != nil {
			return nil, fmt.Errorf("merge countries: %w", err)
		}
		if err := mergePlaces(ctx, tx, params["places"]); err != nil {
			return nil, fmt.Errorf("merge places: %w", err)
		}
		if err := pruneStale(ctx, tx, params["keys"]); err != nil {
			return nil, fmt.Errorf("prune: %w", err)
		}
		return nil, nil
	})
	return err
}

// ingestParams flattens the catalog into Cypher parameters.
func ingestParams(data catalog.Seed) map[string]any {
	weather := make(map[string]catalog.Weather, len(data.Weather))
	for _, w := range data.Weather {
		weather[w.Country] = w
	}

	countries := make([]any, 0, len(data.Countries))
	for i, c := range data.Countries {
		w := weather[c.Name]
		forecast := make([]any, len(w.Forecast))
		for j, f := range w.Forecast {
			forecast[j] = f
		}
		countries = append(countries, map[string]any{
			"name":     c.Name,
			"flag":     c.Flag,
			"code":     c.Code,
			"seq":      i,
			"weather":  w.Description,
			"forecast": forecast,
		})
	}

	places := make([]any, 0, len(data.Places))
	keys := make([]any, 0, len(data.Places))
	for i, p := range data.Places {
		images := make([]any, len(p.Images))
		for j, url := range p.Images {
			images[j] = map[string]any{"url": url, "ordinal": j}
		}
		places = append(places, map[string]any{
			"name":              p.Name,
			"country":           p.Country,
			"short_description": p.ShortDescription,
			"description":       p.Description,
			"seq":               i,
			"images":            images,
		})
		keys = append(keys, p.Country+"/"+p.Name)
	}

	return map[string]any{"countries": countries, "places": places, "keys": keys}
}

func mergeCountries(ctx context.Context, tx neo4j.ManagedTransaction, countries any) error {
	query := `
		UNWIND $countries AS row
		MERGE (c:Country {name: row.name})
		SET c.flag = row.flag,
			c.code = row.code,
			c.seq = row.seq,
			c.weather = row.weather,
			c.forecast = row.forecast
	`
	_, err := tx.Run(ctx, query, map[string]any{"countries": countries})
	return err
}

func mergePlaces(ctx context.Context, tx neo4j.ManagedTransaction, places any) error {
	query := `
		UNWIND $places AS row
		MATCH (c:Country {name: row.country})
		MERGE (p:Place {country: row.country, name: row.name})
		SET p.short_description = row.short_description,
			p.description = row.description,
			p.seq = row.seq
		MERGE (c)-[:HAS_PLACE]->(p)
		WITH p, row
		OPTIONAL MATCH (p)-[:HAS_IMAGE]->(old:Image)
		DETACH DELETE old
		WITH DISTINCT p, row
		UNWIND row.images AS img
		CREATE (p)-[:HAS_IMAGE]->(:Image {url: img.url, ordinal: img.ordinal})
	`
	_, err := tx.Run(ctx, query, map[string]any{"places": places})
	return err
}

func pruneStale(ctx context.Context, tx neo4j.ManagedTransaction, keys any) error {
	query := `
		MATCH (p:Place)
		WHERE NOT (p.country + '/' + p.name) IN $keys
		OPTIONAL MATCH (p)-[:HAS_IMAGE]->(i:Image)
		DETACH DELETE p, i
	`
	_, err := tx.Run(ctx, query, map[string]any{"keys": keys})
	return err
}
