package cli

import (
	"context"
	"fmt"

	"travelbrowser/internal/catalog"
	"travelbrowser/internal/catalog/graph"
	"travelbrowser/internal/catalog/relational"
	"travelbrowser/internal/config"
	"travelbrowser/internal/guide"
	"travelbrowser/internal/log"
)

// App holds the collaborators shared by the commands.
type App struct {
	Config config.Config
	DB     *relational.DuckDBClient
	Repo   *relational.Repo
	Seeded bool // the bundled catalog was written on open

	Graph  graph.GraphClient // nil until StartGraph succeeds
	Worker *graph.SyncWorker
	Guide  *guide.Engine // nil unless both graph and model are configured
	gen    *guide.GeminiGenerator
}

// Open opens the catalog store, migrates it and seeds it when empty.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	opts := []relational.DuckDBOption{
		relational.WithTimeout(cfg.FetchTimeout),
		relational.WithThreads(cfg.DBThreads),
		relational.WithMemoryLimit(cfg.DBMemoryMB),
	}
	var db *relational.DuckDBClient
	var err error
	if cfg.DBPath == "" || cfg.DBPath == ":memory:" {
		db, err = relational.NewInMemoryDB(opts...)
	} else {
		db, err = relational.NewFileDB(cfg.DBPath, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	repo := relational.NewRepo(db.DB(), relational.WithLocale(cfg.Locale))
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	a := &App{Config: cfg, DB: db, Repo: repo}
	if cfg.Seed {
		a.Seeded, err = repo.Seed(ctx, catalog.SeedData())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		if a.Seeded {
			log.InfoLog.Printf("seeded catalog at %q", cfg.DBPath)
		}
	}
	return a, nil
}

// StartGraph connects to Neo4j and starts mirroring the catalog. It does
// nothing when no graph is configured.
func (a *App) StartGraph(ctx context.Context) error {
	if !a.Config.GraphEnabled() || a.Worker != nil {
		return nil
	}
	c := a.Config
	client, err := graph.NewNeo4jClient(c.Neo4jURI, c.Neo4jUser, c.Neo4jPassword, c.Neo4jDatabase)
	if err != nil {
		return err
	}
	if err := a.startMirror(ctx, client); err != nil {
		client.Close(ctx)
		return err
	}
	log.InfoLog.Printf("graph mirror started against %s every %s", c.Neo4jURI, c.GraphSyncInterval)
	return nil
}

// startMirror runs the sync worker for an already connected graph.
func (a *App) startMirror(ctx context.Context, client graph.GraphClient) error {
	w, err := graph.NewSyncWorker(a.Repo, client, a.Config.GraphSyncInterval)
	if err != nil {
		return err
	}
	w.ResetOnStop = a.Config.GraphResetOnStop
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.Graph = client
	a.Worker = w
	return nil
}

// StartGuide creates the question answering engine. It needs the graph.
func (a *App) StartGuide(ctx context.Context) error {
	if !a.Config.GuideEnabled() || a.Guide != nil {
		return nil
	}
	if a.Graph == nil {
		return fmt.Errorf("the guide needs the graph mirror (set NEO4J_URI)")
	}
	gen, err := guide.NewGeminiGenerator(ctx, a.Config.GeminiAPIKey, a.Config.GeminiModel)
	if err != nil {
		return err
	}
	a.gen = gen
	a.Guide = guide.NewEngine(a.Graph, gen)
	log.InfoLog.Printf("guide ready with model %s", gen.ModelName())
	return nil
}

// Close stops the background work and releases the store.
func (a *App) Close() {
	if a.gen != nil {
		if err := a.gen.Close(); err != nil {
			log.WarningLog.Printf("close model client: %v", err)
		}
	}
	if a.Worker != nil {
		a.Worker.Stop()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.WarningLog.Printf("close catalog: %v", err)
		}
	}
}
